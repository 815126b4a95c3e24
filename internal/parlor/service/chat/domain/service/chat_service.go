package service

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
)

// StartChatRequest describes a new conversation or a continuation of a
// stored one.
type StartChatRequest struct {
	// Topic is the discussion topic for a fresh conversation. For a
	// continuation it is the user's steering message and is recorded in
	// the transcript before any agent speaks.
	Topic string

	// Turns is the agent-turn budget; 0 selects the configured default.
	Turns int

	// ConversationID selects an existing transcript to continue. Empty
	// starts a fresh conversation.
	ConversationID string
}

// StartChatResult hands the caller the stream and the conversation it runs.
type StartChatResult struct {
	ConversationID string
	Turns          int
	Events         *schema.StreamReader[*entity.ChatEvent]
}

// ChatService is the application service of the chat module.
type ChatService interface {
	// StartChat launches a conversation session and returns its event
	// stream. The caller consumes events via Recv() until io.EOF; the
	// stream carries exactly one terminal event, always last.
	StartChat(ctx context.Context, req *StartChatRequest) (*StartChatResult, error)

	// StopChat cancels the live session of the given conversation, or all
	// live sessions when conversationID is empty. Idempotent: stopping an
	// unknown or finished conversation succeeds.
	StopChat(ctx context.Context, conversationID string) error

	// GetConversation returns a stored transcript.
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)

	// ListConversations returns summaries of all stored transcripts,
	// newest first.
	ListConversations(ctx context.Context) ([]*entity.Summary, error)

	// UsageReport aggregates per-agent message counts, estimated tokens
	// and estimated cost over all stored transcripts.
	UsageReport(ctx context.Context) (*entity.UsageReport, error)
}
