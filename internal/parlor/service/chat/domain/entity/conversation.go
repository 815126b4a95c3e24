package entity

import (
	"time"
)

// Reserved author names for messages not produced by a roster agent.
const (
	// AuthorUser marks messages injected by the requesting user, such as
	// the steering message of a continuation.
	AuthorUser = "User"
	// AuthorSystem marks engine-generated notices, such as the stop notice
	// appended when a conversation is cancelled.
	AuthorSystem = "System"
)

// Message is a single utterance in a conversation transcript.
type Message struct {
	// Author is the display name of the speaker.
	Author string `json:"ai"`
	// Text is the utterance content.
	Text string `json:"message"`
	// Turn is the global 1-based turn index for agent messages. User and
	// system messages carry the index of the last agent turn before them.
	Turn int `json:"turn"`
	// Timestamp is when the message was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// NewAgentMessage creates a message spoken by a roster agent at the
// given turn index.
func NewAgentMessage(author, text string, turn int) *Message {
	return &Message{
		Author:    author,
		Text:      text,
		Turn:      turn,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user-injected message anchored at the current
// last turn, so that agent turn indices stay contiguous across it.
func NewUserMessage(text string, lastTurn int) *Message {
	return &Message{
		Author:    AuthorUser,
		Text:      text,
		Turn:      lastTurn,
		Timestamp: time.Now(),
	}
}

// NewSystemMessage creates an engine notice anchored at the current last turn.
func NewSystemMessage(text string, lastTurn int) *Message {
	return &Message{
		Author:    AuthorSystem,
		Text:      text,
		Turn:      lastTurn,
		Timestamp: time.Now(),
	}
}

// Conversation is the append-only transcript of one round-table discussion.
type Conversation struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	CreatedAt time.Time  `json:"created_at"`
	Messages  []*Message `json:"messages"`
}

// LastTurn returns the highest turn index recorded so far, 0 for an
// empty transcript.
func (c *Conversation) LastTurn() int {
	last := 0
	for _, m := range c.Messages {
		if m.Turn > last {
			last = m.Turn
		}
	}
	return last
}

// Append adds messages to the transcript.
func (c *Conversation) Append(msgs ...*Message) {
	c.Messages = append(c.Messages, msgs...)
}

// Window returns the trailing k messages of the transcript.
func (c *Conversation) Window(k int) []*Message {
	if k <= 0 || len(c.Messages) <= k {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-k:]
}

// previewLimit is the rune budget of a list preview.
const previewLimit = 50

// Summary is the listing projection of a conversation.
type Summary struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	LastMessage  string    `json:"last_message"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summarize projects a conversation into its listing form. The last
// message text is truncated to 50 runes with an ellipsis.
func (c *Conversation) Summarize() *Summary {
	s := &Summary{
		ID:           c.ID,
		Topic:        c.Topic,
		MessageCount: len(c.Messages),
		CreatedAt:    c.CreatedAt,
	}
	if n := len(c.Messages); n > 0 {
		s.LastMessage = truncatePreview(c.Messages[n-1].Text)
	}
	return s
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
