package model

import "time"

// Config is the full application configuration.
//
// Hierarchy (highest to lowest priority):
//  1. CLI flags
//  2. Environment variables (FACTLENS_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)
//  3. Config file (~/.factlens/config.yaml)
//  4. Defaults
type Config struct {
	KG       KGConfig       `yaml:"kg" mapstructure:"kg"`
	Oracle   OracleConfig   `yaml:"oracle" mapstructure:"oracle"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
}

// KGConfig locates the static knowledge graph document.
type KGConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OracleConfig configures the external reasoning oracle. An empty
// Provider disables the oracle entirely; the pipeline then runs with
// the pattern claim extractor and the rule-based assessor.
type OracleConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// PipelineConfig tunes the verification pipeline itself.
type PipelineConfig struct {
	TopK int `yaml:"top_k" mapstructure:"top_k"`

	// RequireEvidence short-circuits to Unverifiable when search returns
	// nothing. The rule-based assessor carries its own default branch and
	// works with empty evidence, so this is off unless an oracle is in use.
	RequireEvidence bool `yaml:"require_evidence" mapstructure:"require_evidence"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// CacheConfig configures the in-memory verify-response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// BatchConfig tunes batch verification.
type BatchConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		KG: KGConfig{
			Path: "data/kg.json",
		},
		Oracle: OracleConfig{
			Provider:          "",
			Timeout:           30,
			MaxTokens:         800,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Pipeline: PipelineConfig{
			TopK:            5,
			RequireEvidence: false,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}
