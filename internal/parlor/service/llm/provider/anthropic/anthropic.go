package anthropic

import (
	"context"

	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"

	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/helper"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
)

const Name = "anthropic"

// New builds a Generator backed by the Anthropic messages API.
func New(ctx context.Context, cfg *genericoptions.AgentConfig) (spi.Generator, error) {
	conf := &einoClaude.Config{
		APIKey:    cfg.ResolveAPIKey(),
		Model:     cfg.Model,
		MaxTokens: 1024,
	}
	if cfg.MaxTokens > 0 {
		conf.MaxTokens = cfg.MaxTokens
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = &cfg.BaseURL
	}

	m, err := einoClaude.NewChatModel(ctx, conf)
	if err != nil {
		return nil, err
	}
	return helper.NewModelGenerator(cfg.Name, m), nil
}
