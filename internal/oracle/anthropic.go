package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/factlens/factlens/internal/model"
)

// AnthropicClient implements Client for Anthropic Claude models.
type AnthropicClient struct {
	client *anthropic.Client
	cfg    model.OracleConfig
}

// NewAnthropicClient creates a new Anthropic oracle client.
func NewAnthropicClient(cfg model.OracleConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name.
func (c *AnthropicClient) Name() string {
	return "anthropic"
}

// Complete sends one prompt through the Messages API.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	chatModel := c.cfg.Model
	if chatModel == "" {
		chatModel = "claude-3-5-haiku-latest"
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 800
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutFor(c.cfg))
	defer cancel()

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(chatModel),
		System: req.System,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(req.Prompt),
				},
			},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return "", fmt.Errorf("anthropic: empty response")
	}

	return strings.TrimSpace(*resp.Content[0].Text), nil
}
