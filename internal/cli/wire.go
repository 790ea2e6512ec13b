package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/factlens/factlens/internal/extract"
	"github.com/factlens/factlens/internal/kg"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/oracle"
	"github.com/factlens/factlens/internal/pipeline"
	"github.com/factlens/factlens/internal/verdict"
)

// loadConfig merges defaults, the config file, FACTLENS_* env vars and
// bound flags, highest priority last.
func loadConfig() (*model.Config, error) {
	setDefaults(model.DefaultConfig())

	cfg := &model.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults registers the built-in defaults with viper so that unset
// flags and absent config keys fall through to them.
func setDefaults(d *model.Config) {
	viper.SetDefault("kg.path", d.KG.Path)
	viper.SetDefault("oracle.provider", d.Oracle.Provider)
	viper.SetDefault("oracle.model", d.Oracle.Model)
	viper.SetDefault("oracle.timeout", d.Oracle.Timeout)
	viper.SetDefault("oracle.max_tokens", d.Oracle.MaxTokens)
	viper.SetDefault("oracle.requests_per_second", d.Oracle.RequestsPerSecond)
	viper.SetDefault("oracle.burst", d.Oracle.Burst)
	viper.SetDefault("pipeline.top_k", d.Pipeline.TopK)
	// pipeline.require_evidence deliberately has no registered default:
	// buildPipeline uses viper.IsSet to tell "user chose false" apart
	// from "unset", and a default would make IsSet always true.
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("batch.workers", d.Batch.Workers)
}

// addPipelineFlags registers the flags shared by every command that
// runs the pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("kg", "", "knowledge graph document (.json or .yaml)")
	cmd.Flags().String("oracle", "", "reasoning oracle provider (openai, anthropic, ollama; empty = rule-based)")
	cmd.Flags().String("oracle-model", "", "oracle model name")
	cmd.Flags().Bool("require-evidence", false, "return Unverifiable immediately when no evidence is found")
}

// bindPipelineFlags binds the shared flags to viper for the command
// actually executing. Binding at execution time keeps sibling commands
// from clobbering each other's flag bindings.
func bindPipelineFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlag("kg.path", cmd.Flags().Lookup("kg")); err != nil {
		return err
	}
	if err := viper.BindPFlag("oracle.provider", cmd.Flags().Lookup("oracle")); err != nil {
		return err
	}
	if err := viper.BindPFlag("oracle.model", cmd.Flags().Lookup("oracle-model")); err != nil {
		return err
	}
	// Only bind require-evidence when the user passed it; the absence
	// of the key is meaningful (see buildPipeline).
	if f := cmd.Flags().Lookup("require-evidence"); f != nil && f.Changed {
		return viper.BindPFlag("pipeline.require_evidence", f)
	}
	return nil
}

// resolveOracleKey pulls the provider API key from the conventional
// environment variables when the config does not carry one. A missing
// key for a key-requiring provider surfaces later as a fatal
// construction error, by design: selecting the oracle strategy without
// credentials must stop startup.
func resolveOracleKey(cfg *model.Config) {
	if cfg.Oracle.APIKey != "" {
		return
	}
	switch cfg.Oracle.Provider {
	case "openai":
		cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.Oracle.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.Oracle.BaseURL == "" {
			cfg.Oracle.BaseURL = baseURL
		}
	}
}

// buildPipeline loads the knowledge graph and wires the verifier with
// the strategies the configuration selects: oracle-assisted when a
// provider is set, the local pattern extractor and rule assessor
// otherwise.
func buildPipeline(cfg *model.Config) (*pipeline.Verifier, *kg.Graph, error) {
	graph, err := kg.LoadFile(cfg.KG.Path)
	if err != nil {
		return nil, nil, err
	}

	resolveOracleKey(cfg)
	client, err := oracle.New(cfg.Oracle)
	if err != nil {
		return nil, nil, err
	}

	var (
		extractor extract.Extractor
		assessor  verdict.Assessor
	)
	if client != nil {
		extractor = extract.NewOracleExtractor(client)
		assessor = verdict.NewOracleAssessor(client)
		// With the oracle there is nothing to reason over when search
		// comes back empty, so short-circuit unless the user said
		// otherwise.
		if !viper.IsSet("pipeline.require_evidence") {
			cfg.Pipeline.RequireEvidence = true
		}
	} else {
		extractor = extract.PatternExtractor{}
		assessor = verdict.NewRuleAssessor()
	}

	verifier := pipeline.NewVerifier(graph, extractor, assessor, pipeline.Options{
		TopK:            cfg.Pipeline.TopK,
		RequireEvidence: cfg.Pipeline.RequireEvidence,
	})

	if verbose {
		entities, sources, facts := graph.Counts()
		fmt.Fprintf(os.Stderr, "Knowledge graph: %d entities, %d sources, %d facts\n", entities, sources, facts)
		if client != nil {
			fmt.Fprintf(os.Stderr, "Oracle: %s\n", client.Name())
		} else {
			fmt.Fprintln(os.Stderr, "Oracle: disabled (pattern extractor + rule assessor)")
		}
	}

	return verifier, graph, nil
}
