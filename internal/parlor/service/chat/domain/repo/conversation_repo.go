package repo

import (
	"context"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
)

// ConversationRepository defines the persistence interface for transcripts.
type ConversationRepository interface {
	// Create stores a new, usually empty, conversation record.
	Create(ctx context.Context, conv *entity.Conversation) error
	// Get retrieves a conversation by ID.
	// Returns errno.ErrConversationNotFound if it does not exist.
	Get(ctx context.Context, id string) (*entity.Conversation, error)
	// AppendMessages appends messages to an existing conversation. Appends
	// are incremental so that a crash leaves a recoverable partial transcript.
	AppendMessages(ctx context.Context, id string, msgs []*entity.Message) error
	// List returns all stored conversations.
	List(ctx context.Context) ([]*entity.Conversation, error)
}
