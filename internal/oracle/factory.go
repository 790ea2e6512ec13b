package oracle

import (
	"fmt"
	"strings"

	"github.com/factlens/factlens/internal/model"
)

// New creates an oracle client based on configuration, wrapped with a
// rate limiter and a circuit breaker. An empty provider returns
// (nil, nil): the oracle is disabled and the pipeline runs on its local
// strategies only.
func New(cfg model.OracleConfig) (Client, error) {
	var (
		client Client
		err    error
	)

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		client, err = NewOpenAIClient(cfg)

	case "anthropic", "claude":
		client, err = NewAnthropicClient(cfg)

	case "ollama":
		client, err = NewOllamaClient(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown oracle provider: %s (supported: openai, anthropic, ollama)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerSecond > 0 {
		client = newLimitedClient(client, cfg.RequestsPerSecond, cfg.Burst)
	}
	return newBreakerClient(client), nil
}
