package openai

import (
	"context"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"

	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/helper"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
)

const Name = "openai"

// New builds a Generator backed by the OpenAI chat completions API.
func New(ctx context.Context, cfg *genericoptions.AgentConfig) (spi.Generator, error) {
	conf := &einoOpenAI.ChatModelConfig{
		Model:     cfg.Model,
		APIKey:    cfg.ResolveAPIKey(),
		MaxTokens: gptr.Of(1024),
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
		},
	}
	if cfg.MaxTokens > 0 {
		conf.MaxTokens = gptr.Of(cfg.MaxTokens)
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	m, err := einoOpenAI.NewChatModel(ctx, conf)
	if err != nil {
		return nil, err
	}
	return helper.NewModelGenerator(cfg.Name, m), nil
}
