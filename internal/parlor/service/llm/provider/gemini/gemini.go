package gemini

import (
	"context"
	"fmt"

	einoGemini "github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/helper"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
)

const Name = "gemini"

// New builds a Generator backed by the Google generative AI API.
func New(ctx context.Context, cfg *genericoptions.AgentConfig) (spi.Generator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.ResolveAPIKey(),
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: "https://generativelanguage.googleapis.com/",
		},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client for %s: %w", cfg.Name, err)
	}

	conf := &einoGemini.Config{
		Client: client,
		Model:  cfg.Model,
	}
	if cfg.MaxTokens > 0 {
		mt := cfg.MaxTokens
		conf.MaxTokens = &mt
	}

	m, err := einoGemini.NewChatModel(ctx, conf)
	if err != nil {
		return nil, err
	}
	return helper.NewModelGenerator(cfg.Name, m), nil
}
