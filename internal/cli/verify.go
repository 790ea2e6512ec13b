package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var verifyTimeout time.Duration

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <text>",
	Short: "Verify a single post against the knowledge graph",
	Long: `Verify runs one post text through the full pipeline and prints the
verification result as JSON:
- Isolate the factual claim in the text
- Link mentioned entities to the knowledge graph
- Retrieve relevant facts by lexical overlap
- Decide verdict, confidence, citations and reasoning

Example:
  factlens verify "Northwind Weather Bureau issued an Amber Rain Warning for Lakeside City."
  factlens verify --kg data/kg.json --oracle openai "Heard all metro is cancelled tomorrow!"`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindPipelineFlags(cmd)
	},
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 60*time.Second, "overall verification timeout")
	addPipelineFlags(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	verifier, _, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	result := verifier.Verify(ctx, args[0])

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
