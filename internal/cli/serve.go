package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/factlens/factlens/internal/cache"
	"github.com/factlens/factlens/internal/server"
)

var noServerCache bool

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve exposes the verification pipeline over HTTP:

  POST /verify   {"text": "..."}  ->  {claim, verdict, confidence, citations, reasoning}
  GET  /healthz                   ->  knowledge graph counts

The knowledge graph is loaded once at startup and never mutated, so
requests are handled concurrently without locking. Verification itself
never produces an error response: malformed oracle replies, oracle
outages and missing evidence all degrade to a well-formed Unverifiable
result.

Example:
  factlens serve --kg data/kg.json
  factlens serve --kg data/kg.json --oracle openai --oracle-model gpt-4o-mini`,
	Args: cobra.NoArgs,
	// Flags are bound here rather than in init: verify and batch bind
	// the same viper keys, and only the executing command's flags may
	// win.
	PreRunE: func(cmd *cobra.Command, args []string) error {
		_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
		return bindPipelineFlags(cmd)
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	addPipelineFlags(serveCmd)
	serveCmd.Flags().BoolVar(&noServerCache, "no-cache", false, "disable the verify response cache")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noServerCache {
		cfg.Cache.Enabled = false
	}

	verifier, graph, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	srv := server.New(verifier, graph, responseCache, cfg.Cache.TTL)

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return srv.Router().Run(cfg.Server.Addr)
}
