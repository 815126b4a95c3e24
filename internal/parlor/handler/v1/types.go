package v1

import (
	"time"
)

// --- Chat stream API ---

// ChatStreamRequest is the request body for POST /v1/chat/stream.
type ChatStreamRequest struct {
	// Topic is the discussion topic, or the steering message when
	// continuing a stored conversation.
	Topic string `json:"topic"`

	// Turns is the agent-turn budget (optional; server default applies).
	Turns int `json:"turns,omitempty"`

	// ConversationID continues the named stored conversation.
	ConversationID string `json:"conversationId,omitempty"`

	// IsContinuation marks the request as a continuation; it requires
	// ConversationID. A request carrying ConversationID alone is treated
	// as a continuation too.
	IsContinuation bool `json:"isContinuation,omitempty"`
}

// StopRequest is the request body for POST /v1/chat/stop.
type StopRequest struct {
	// ConversationID selects the session to stop; empty stops all.
	ConversationID string `json:"conversationId,omitempty"`
}

// StopResponse reports the outcome of a stop request. Stopping is
// idempotent, so Success is always true.
type StopResponse struct {
	Success bool `json:"success"`
}

// --- Conversation API ---

// MessageResponse is a single transcript message on the wire.
type MessageResponse struct {
	Author    string    `json:"ai"`
	Text      string    `json:"message"`
	Turn      int       `json:"turn"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationResponse is the full transcript record.
type ConversationResponse struct {
	ID        string            `json:"id"`
	Topic     string            `json:"topic"`
	CreatedAt time.Time         `json:"created_at"`
	Messages  []MessageResponse `json:"messages"`
}

// SummaryResponse is a single row of the conversation listing.
type SummaryResponse struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	LastMessage  string    `json:"last_message"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ConversationListResponse is the response for GET /v1/conversations.
type ConversationListResponse struct {
	Conversations []SummaryResponse `json:"conversations"`
}

// --- Usage API ---

// AgentUsageResponse is the per-agent aggregation row.
type AgentUsageResponse struct {
	Name            string  `json:"ai"`
	Messages        int     `json:"messages"`
	EstimatedTokens int64   `json:"estimated_tokens"`
	EstimatedCost   float64 `json:"estimated_cost_usd"`
}

// UsageResponse is the response for GET /v1/usage.
type UsageResponse struct {
	Conversations int                  `json:"conversations"`
	TotalMessages int                  `json:"total_messages"`
	Agents        []AgentUsageResponse `json:"agents"`
}
