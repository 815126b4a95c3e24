package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
)

func newTestStore(t *testing.T) *ConversationStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "parley.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewConversationStore(db)
}

func TestConversationStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv := &entity.Conversation{
		ID:        "c1",
		Topic:     "persistence",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Create(ctx, conv))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, "persistence", got.Topic)
}

func TestConversationStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, errno.ErrConversationNotFound)
}

func TestConversationStore_AppendMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv := &entity.Conversation{ID: "c1", Topic: "t", CreatedAt: time.Now()}
	require.NoError(t, store.Create(ctx, conv))

	require.NoError(t, store.AppendMessages(ctx, "c1", []*entity.Message{
		entity.NewAgentMessage("GPT-4", "first", 1),
	}))
	require.NoError(t, store.AppendMessages(ctx, "c1", []*entity.Message{
		entity.NewAgentMessage("Claude", "second", 2),
		entity.NewUserMessage("steer", 2),
	}))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "GPT-4", got.Messages[0].Author)
	assert.Equal(t, 2, got.Messages[1].Turn)
	assert.Equal(t, entity.AuthorUser, got.Messages[2].Author)

	err = store.AppendMessages(ctx, "missing", []*entity.Message{
		entity.NewAgentMessage("A", "x", 1),
	})
	assert.ErrorIs(t, err, errno.ErrConversationNotFound)
}

func TestConversationStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parley.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	store := NewConversationStore(db)

	conv := &entity.Conversation{ID: "c1", Topic: "durable", CreatedAt: time.Now()}
	require.NoError(t, store.Create(ctx, conv))
	require.NoError(t, store.AppendMessages(ctx, "c1", []*entity.Message{
		entity.NewAgentMessage("A", "kept", 1),
	}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewConversationStore(db).Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Topic)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "kept", got.Messages[0].Text)
}

func TestConversationStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"c1", "c2"} {
		require.NoError(t, store.Create(ctx, &entity.Conversation{ID: id, CreatedAt: time.Now()}))
	}

	convs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, convs, 2)
}
