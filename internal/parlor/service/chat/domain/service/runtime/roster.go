package runtime

import (
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
)

// Roster is the ordered set of conversation participants. Turn assignment
// is pure round-robin over the roster order: turn t belongs to agent
// (t-1) mod len(roster), with t counted globally across continuations.
type Roster struct {
	generators []spi.Generator
}

// NewRoster creates a roster from the given generators.
func NewRoster(generators []spi.Generator) (*Roster, error) {
	if len(generators) == 0 {
		return nil, errno.ErrEmptyRoster
	}
	return &Roster{generators: generators}, nil
}

// Pick returns the agent that owns the given 1-based turn index.
func (r *Roster) Pick(turn int) spi.Generator {
	return r.generators[(turn-1)%len(r.generators)]
}

// Size returns the number of participants.
func (r *Roster) Size() int {
	return len(r.generators)
}

// Names returns the participant display names in roster order.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.generators))
	for _, g := range r.generators {
		names = append(names, g.Name())
	}
	return names
}
