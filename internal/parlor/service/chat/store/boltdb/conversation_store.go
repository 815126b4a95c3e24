package boltdb

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
	"github.com/kiosk404/parley/pkg/utils/json"
)

// ConversationStore implements ConversationRepository on BoltDB, one JSON
// record per conversation keyed by ID.
type ConversationStore struct {
	boltDB *bolt.DB
}

// NewConversationStore creates a new ConversationStore instance.
func NewConversationStore(boltDB *DB) *ConversationStore {
	return &ConversationStore{boltDB: boltDB.Bolt()}
}

func (s *ConversationStore) Create(_ context.Context, conv *entity.Conversation) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		data, err := json.Marshal(conv)
		if err != nil {
			return fmt.Errorf("failed to marshal conversation: %w", err)
		}
		return b.Put([]byte(conv.ID), data)
	})
}

func (s *ConversationStore) Get(_ context.Context, id string) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		data := b.Get([]byte(id))
		if data == nil {
			return errno.ErrConversationNotFound
		}
		return json.Unmarshal(data, &conv)
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// AppendMessages reads, extends and rewrites the record inside one
// update transaction. Appends per conversation are already serialized by
// the single-live-session invariant; the transaction guards against
// concurrent API reads.
func (s *ConversationStore) AppendMessages(_ context.Context, id string, msgs []*entity.Message) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		data := b.Get([]byte(id))
		if data == nil {
			return errno.ErrConversationNotFound
		}
		var conv entity.Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			return fmt.Errorf("failed to unmarshal conversation: %w", err)
		}
		conv.Append(msgs...)
		updated, err := json.Marshal(&conv)
		if err != nil {
			return fmt.Errorf("failed to marshal conversation: %w", err)
		}
		return b.Put([]byte(id), updated)
	})
}

func (s *ConversationStore) List(_ context.Context) ([]*entity.Conversation, error) {
	var convs []*entity.Conversation
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		return b.ForEach(func(k, v []byte) error {
			var conv entity.Conversation
			if err := json.Unmarshal(v, &conv); err != nil {
				return fmt.Errorf("failed to unmarshal conversation: %w", err)
			}
			convs = append(convs, &conv)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}
