package inmemory

import (
	"context"
	"sync"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
)

// ConversationStore is an in-memory implementation of ConversationRepository.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*entity.Conversation
}

// NewConversationStore creates a new instance of the ConversationStore.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*entity.Conversation),
	}
}

func (s *ConversationStore) Create(_ context.Context, conv *entity.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *conv
	stored.Messages = append([]*entity.Message(nil), conv.Messages...)
	s.conversations[conv.ID] = &stored
	return nil
}

func (s *ConversationStore) Get(_ context.Context, id string) (*entity.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, errno.ErrConversationNotFound
	}
	// Copy out so callers never alias the stored record.
	out := *conv
	out.Messages = append([]*entity.Message(nil), conv.Messages...)
	return &out, nil
}

func (s *ConversationStore) AppendMessages(_ context.Context, id string, msgs []*entity.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return errno.ErrConversationNotFound
	}
	conv.Append(msgs...)
	return nil
}

func (s *ConversationStore) List(_ context.Context) ([]*entity.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	convs := make([]*entity.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		out := *conv
		out.Messages = append([]*entity.Message(nil), conv.Messages...)
		convs = append(convs, &out)
	}
	return convs, nil
}
