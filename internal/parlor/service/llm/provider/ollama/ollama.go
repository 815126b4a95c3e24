package ollama

import (
	"context"

	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"

	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/helper"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
)

const Name = "ollama"

// New builds a Generator backed by a local Ollama instance. No API key is
// required, which makes this the keyless path for local development.
func New(ctx context.Context, cfg *genericoptions.AgentConfig) (spi.Generator, error) {
	conf := &einoOllama.ChatModelConfig{
		BaseURL: "http://127.0.0.1:11434",
		Model:   cfg.Model,
		Options: &einoOllama.Options{},
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	m, err := einoOllama.NewChatModel(ctx, conf)
	if err != nil {
		return nil, err
	}
	return helper.NewModelGenerator(cfg.Name, m), nil
}
