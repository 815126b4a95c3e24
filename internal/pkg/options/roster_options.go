package options

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// RosterOptions configures the ordered set of participants in a
// round-table conversation. Order matters: turns rotate through the
// roster in the order given here.
type RosterOptions struct {
	Agents []AgentConfig `json:"agents" mapstructure:"agents"`
}

// AgentConfig describes a single roster participant and the backend
// model it speaks through.
type AgentConfig struct {
	// Name is the display name recorded on every message the agent produces.
	Name string `json:"name" mapstructure:"name"`
	// Provider selects the backend plugin: openai, anthropic, gemini or ollama.
	Provider string `json:"provider" mapstructure:"provider"`
	// Model is the provider-side model identifier.
	Model string `json:"model" mapstructure:"model"`
	// APIKey authenticates against the provider. "${ENV_NAME}" references
	// are expanded from the environment.
	APIKey string `json:"api-key" mapstructure:"api-key"`
	// BaseURL overrides the provider's default endpoint.
	BaseURL string `json:"base-url" mapstructure:"base-url"`
	// MaxTokens bounds the response length per call.
	MaxTokens int `json:"max-tokens" mapstructure:"max-tokens"`
	// Cost holds the per-million-token price used for local cost estimation.
	Cost AgentCost `json:"cost" mapstructure:"cost"`
}

// AgentCost is the USD price per million tokens.
type AgentCost struct {
	Input  float64 `json:"input" mapstructure:"input"`
	Output float64 `json:"output" mapstructure:"output"`
}

// ResolveAPIKey expands environment references in the configured key.
func (c *AgentConfig) ResolveAPIKey() string {
	return os.ExpandEnv(c.APIKey)
}

// NewRosterOptions returns the default three-voice roster.
func NewRosterOptions() *RosterOptions {
	return &RosterOptions{
		Agents: []AgentConfig{
			{
				Name:      "GPT-4",
				Provider:  "openai",
				Model:     "gpt-4-turbo-preview",
				APIKey:    "${OPENAI_API_KEY}",
				MaxTokens: 1024,
				Cost:      AgentCost{Input: 10, Output: 30},
			},
			{
				Name:      "Claude",
				Provider:  "anthropic",
				Model:     "claude-sonnet-4-20250514",
				APIKey:    "${ANTHROPIC_API_KEY}",
				MaxTokens: 1024,
				Cost:      AgentCost{Input: 3, Output: 15},
			},
			{
				Name:      "Gemini",
				Provider:  "gemini",
				Model:     "gemini-2.0-flash-exp",
				APIKey:    "${GOOGLE_API_KEY}",
				MaxTokens: 1024,
				Cost:      AgentCost{Input: 0.1, Output: 0.4},
			},
		},
	}
}

// Validate checks the roster options.
func (o *RosterOptions) Validate() []error {
	var errs []error
	if len(o.Agents) == 0 {
		errs = append(errs, fmt.Errorf("roster must contain at least one agent"))
	}
	seen := make(map[string]bool, len(o.Agents))
	for i, a := range o.Agents {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("roster agent %d: name is required", i))
		}
		if seen[a.Name] {
			errs = append(errs, fmt.Errorf("roster agent %q: duplicate name", a.Name))
		}
		seen[a.Name] = true
		if a.Provider == "" {
			errs = append(errs, fmt.Errorf("roster agent %q: provider is required", a.Name))
		}
		if a.Model == "" {
			errs = append(errs, fmt.Errorf("roster agent %q: model is required", a.Name))
		}
	}
	return errs
}

// AddFlags adds roster flags to the given flag set. The roster itself is
// structured configuration and comes from the config file; only scalar
// knobs are exposed as flags.
func (o *RosterOptions) AddFlags(fs *pflag.FlagSet) {
}

// CostTable returns the per-agent cost rates keyed by display name.
func (o *RosterOptions) CostTable() map[string]AgentCost {
	table := make(map[string]AgentCost, len(o.Agents))
	for _, a := range o.Agents {
		table[a.Name] = a.Cost
	}
	return table
}
