package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/factlens/factlens/internal/worker"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
	batchOutput      string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple posts from a file in parallel",
	Long: `Batch verifies many posts concurrently:
- Read post texts from the input file (one per line, # comments skipped)
- Verify posts in parallel with a configurable worker count
- Write one JSON result per line (JSON Lines)

Every request runs independently against the shared read-only knowledge
graph, so concurrency needs no locking.

Example:
  factlens batch posts.txt
  factlens batch posts.txt --concurrency 8 --out results.jsonl`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindPipelineFlags(cmd)
	},
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchOutput, "out", "", "output path for JSON Lines results (default stdout)")
	addPipelineFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchConcurrency > 0 {
		cfg.Batch.Workers = batchConcurrency
	}

	verifier, _, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Verifying posts from %s with %d workers\n", args[0], cfg.Batch.Workers)

	batch := worker.NewBatchVerifier(verifier, cfg.Batch.Workers)
	results, err := batch.VerifyFile(ctx, args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	encoder := json.NewEncoder(out)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "verify %q: %v\n", r.Text, r.Err)
			continue
		}
		if err := encoder.Encode(r.Result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Done: %d verified, %d failed\n", len(results)-failed, failed)
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Workers: %d, timeout: %v\n", cfg.Batch.Workers, batchTimeout)
	}
	return nil
}
