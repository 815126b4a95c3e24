// Package helper adapts Eino chat models to the Generator interface.
package helper

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ModelGenerator wraps an Eino BaseChatModel as a roster Generator.
type ModelGenerator struct {
	name  string
	model model.BaseChatModel
}

// NewModelGenerator creates a generator with the given display name.
func NewModelGenerator(name string, m model.BaseChatModel) *ModelGenerator {
	return &ModelGenerator{name: name, model: m}
}

// Name returns the agent display name.
func (g *ModelGenerator) Name() string {
	return g.name
}

// Generate runs a single-message completion and returns the trimmed text.
// An empty completion is an error; the scheduler treats it like any other
// agent failure.
func (g *ModelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := g.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return strings.TrimSpace(msg.Content), nil
}
