package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRosterOptions_Defaults(t *testing.T) {
	o := NewRosterOptions()
	require.Len(t, o.Agents, 3)
	assert.Equal(t, "GPT-4", o.Agents[0].Name)
	assert.Equal(t, "openai", o.Agents[0].Provider)
	assert.Equal(t, "Claude", o.Agents[1].Name)
	assert.Equal(t, "anthropic", o.Agents[1].Provider)
	assert.Equal(t, "Gemini", o.Agents[2].Name)
	assert.Equal(t, "gemini", o.Agents[2].Provider)
	assert.Empty(t, o.Validate())
}

func TestAgentConfig_ResolveAPIKey(t *testing.T) {
	t.Setenv("PARLEY_TEST_KEY", "sk-12345")

	c := &AgentConfig{APIKey: "${PARLEY_TEST_KEY}"}
	assert.Equal(t, "sk-12345", c.ResolveAPIKey())

	c = &AgentConfig{APIKey: "literal-key"}
	assert.Equal(t, "literal-key", c.ResolveAPIKey())

	c = &AgentConfig{APIKey: "${PARLEY_TEST_KEY_UNSET}"}
	assert.Empty(t, c.ResolveAPIKey())
}

func TestRosterOptions_Validate(t *testing.T) {
	o := &RosterOptions{}
	errs := o.Validate()
	require.Len(t, errs, 1)

	o = &RosterOptions{Agents: []AgentConfig{
		{Name: "A", Provider: "openai", Model: "gpt-4"},
		{Name: "A", Provider: "anthropic", Model: "claude"},
	}}
	errs = o.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "duplicate")

	o = &RosterOptions{Agents: []AgentConfig{{Name: "A"}}}
	errs = o.Validate()
	assert.Len(t, errs, 2)
}

func TestRosterOptions_CostTable(t *testing.T) {
	o := NewRosterOptions()
	table := o.CostTable()
	assert.Equal(t, 30.0, table["GPT-4"].Output)
	assert.Equal(t, 15.0, table["Claude"].Output)
	assert.Equal(t, 0.4, table["Gemini"].Output)
}

func TestChatOptions_Validate(t *testing.T) {
	o := NewChatOptions()
	assert.Empty(t, o.Validate())

	o.StoreType = "postgres"
	o.MaxTurns = 1
	errs := o.Validate()
	assert.Len(t, errs, 2)
}
