package runtime

import (
	"fmt"
	"strings"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
)

// PromptBuilder renders the prompt an agent sees for its turn. It is pure:
// the same agent, topic and history always produce the same prompt.
type PromptBuilder struct{}

// NewPromptBuilder creates a PromptBuilder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build renders the turn prompt. An empty history produces the opening
// prompt; otherwise the trailing window is rendered one "{author}: {text}"
// line per message and the agent is asked to respond to it.
func (b *PromptBuilder) Build(agent, topic string, history []*entity.Message) string {
	if len(history) == 0 {
		return fmt.Sprintf(
			"You are %s. Start a discussion about %q. Share your initial thoughts in 1-3 sentences.",
			agent, topic)
	}

	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Author, m.Text))
	}

	return fmt.Sprintf(
		"You are %s, taking part in a discussion about %q. Recent conversation:\n%s\n\nRespond naturally to the discussion in 1-3 sentences.",
		agent, topic, strings.Join(lines, "\n"))
}
