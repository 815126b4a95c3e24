// Package llm builds the roster of model-backed generators.
package llm

import (
	"context"
	"fmt"

	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
	"github.com/kiosk404/parley/pkg/logger"
)

// Config holds the configuration for the LLM module.
// Follows the Config → Complete() → New(ctx) wiring convention.
type Config struct {
	// Roster is the ordered list of participants.
	Roster *genericoptions.RosterOptions
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.Roster == nil {
		c.Roster = genericoptions.NewRosterOptions()
	}
	return CompletedConfig{c}
}

// Module exposes the built generators in roster order, plus the cost
// table used for local usage estimation.
type Module struct {
	// Generators are the roster participants in configured order.
	Generators []spi.Generator
	// Costs maps agent display names to per-million-token prices.
	Costs map[string]genericoptions.AgentCost
}

// New creates the LLM module from a completed config.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	if len(c.Roster.Agents) == 0 {
		return nil, fmt.Errorf("roster must contain at least one agent")
	}

	generators := make([]spi.Generator, 0, len(c.Roster.Agents))
	for i := range c.Roster.Agents {
		agent := &c.Roster.Agents[i]
		gen, err := provider.NewGenerator(ctx, agent)
		if err != nil {
			return nil, fmt.Errorf("build generator for agent %q: %w", agent.Name, err)
		}
		generators = append(generators, gen)
		logger.Info("[LLM] roster agent %q ready (provider=%s, model=%s)", agent.Name, agent.Provider, agent.Model)
	}

	return &Module{
		Generators: generators,
		Costs:      c.Roster.CostTable(),
	}, nil
}
