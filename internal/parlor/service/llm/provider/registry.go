// Package provider maps provider names to Generator builders.
package provider

import (
	"context"
	"fmt"
	"sort"

	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/anthropic"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/gemini"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/ollama"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/openai"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
)

// BuilderFunc constructs a Generator from an agent config.
type BuilderFunc func(ctx context.Context, cfg *genericoptions.AgentConfig) (spi.Generator, error)

var builders = map[string]BuilderFunc{
	openai.Name:    openai.New,
	anthropic.Name: anthropic.New,
	gemini.Name:    gemini.New,
	ollama.Name:    ollama.New,
}

// NewGenerator builds a Generator for the agent's configured provider.
func NewGenerator(ctx context.Context, cfg *genericoptions.AgentConfig) (spi.Generator, error) {
	build, ok := builders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q for agent %q (known: %v)", cfg.Provider, cfg.Name, Names())
	}
	return build(ctx, cfg)
}

// Names returns the registered provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
