package entity

import (
	"time"
)

// EventType identifies the type of a streaming chat event.
type EventType string

const (
	// EventStart opens every stream, announcing topic and turn budget.
	EventStart EventType = "start"

	// EventMessage carries one completed agent utterance.
	EventMessage EventType = "message"

	// EventComplete ends a stream whose turn budget was exhausted.
	EventComplete EventType = "complete"

	// EventError ends a stream after an unrecoverable agent failure.
	EventError EventType = "error"

	// EventStopped ends a stream that was cancelled.
	EventStopped EventType = "stopped"
)

// ChatEvent is a streaming event emitted while a conversation runs.
//
// It flows through schema.Pipe[*ChatEvent] from the scheduler goroutine to
// the SSE handler, which is the sole consumer.
type ChatEvent struct {
	Type EventType    `json:"type"`
	Data EventPayload `json:"data"`
}

// EventPayload is the data half of a ChatEvent. Fields are populated per
// event type; everything else is omitted from the wire.
type EventPayload struct {
	// Topic and Turns are set on start events.
	Topic string `json:"topic,omitempty"`
	Turns int    `json:"turns,omitempty"`

	// AI, Message, Turn and Timestamp are set on message events.
	// AI is also set on error events to name the failed agent.
	AI        string `json:"ai,omitempty"`
	Message   string `json:"message,omitempty"`
	Turn      int    `json:"turn,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`

	// ConversationID and TotalMessages are set on complete and stopped events.
	ConversationID string `json:"conversation_id,omitempty"`
	TotalMessages  int    `json:"total_messages,omitempty"`

	// Error is set on error events.
	Error string `json:"error,omitempty"`
}

// IsTerminal reports whether the event closes its stream.
func (e *ChatEvent) IsTerminal() bool {
	switch e.Type {
	case EventComplete, EventError, EventStopped:
		return true
	}
	return false
}

// NewStartEvent announces a starting or continuing conversation.
func NewStartEvent(topic string, turns int) *ChatEvent {
	return &ChatEvent{
		Type: EventStart,
		Data: EventPayload{Topic: topic, Turns: turns},
	}
}

// NewMessageEvent wraps a completed agent utterance.
func NewMessageEvent(m *Message) *ChatEvent {
	return &ChatEvent{
		Type: EventMessage,
		Data: EventPayload{
			AI:        m.Author,
			Message:   m.Text,
			Turn:      m.Turn,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		},
	}
}

// NewCompleteEvent closes a stream that ran its full budget.
func NewCompleteEvent(conversationID string, totalMessages int) *ChatEvent {
	return &ChatEvent{
		Type: EventComplete,
		Data: EventPayload{ConversationID: conversationID, TotalMessages: totalMessages},
	}
}

// NewErrorEvent closes a stream after the named agent failed.
func NewErrorEvent(agent string, err error) *ChatEvent {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &ChatEvent{
		Type: EventError,
		Data: EventPayload{AI: agent, Error: msg},
	}
}

// NewStoppedEvent closes a cancelled stream.
func NewStoppedEvent(conversationID string) *ChatEvent {
	return &ChatEvent{
		Type: EventStopped,
		Data: EventPayload{ConversationID: conversationID},
	}
}
