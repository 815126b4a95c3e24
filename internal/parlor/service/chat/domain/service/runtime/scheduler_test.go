package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/internal/parlor/service/chat/store/inmemory"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
)

func testSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TurnDelay:     time.Millisecond,
		HistoryWindow: 5,
		CallTimeout:   time.Second,
	}
}

func newTestConversation(t *testing.T, store *inmemory.ConversationStore) *entity.Conversation {
	conv := &entity.Conversation{
		ID:        "conv-1",
		Topic:     "test topic",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Create(context.Background(), conv))
	return conv
}

func drainEvents(t *testing.T, sr *schema.StreamReader[*entity.ChatEvent]) []*entity.ChatEvent {
	t.Helper()
	var events []*entity.ChatEvent
	for {
		ev, err := sr.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
	return events
}

func TestTurnScheduler_RunFullBudget(t *testing.T) {
	store := inmemory.NewConversationStore()
	conv := newTestConversation(t, store)

	gens := []spi.Generator{
		&fakeGenerator{name: "A", fn: func(context.Context, string) (string, error) { return "from A", nil }},
		&fakeGenerator{name: "B", fn: func(context.Context, string) (string, error) { return "from B", nil }},
	}
	roster, err := NewRoster(gens)
	require.NoError(t, err)

	scheduler := NewTurnScheduler(roster, store, testSchedulerConfig())
	manager := NewSessionManager(time.Second)

	sr, sw := schema.Pipe[*entity.ChatEvent](20)
	sess, err := manager.Start(conv.ID, sw)
	require.NoError(t, err)

	scheduler.Run(sess, conv, 4)
	events := drainEvents(t, sr)

	require.Len(t, events, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, entity.EventMessage, events[i].Type)
		assert.Equal(t, i+1, events[i].Data.Turn)
	}
	// Round-robin by turn index.
	assert.Equal(t, "A", events[0].Data.AI)
	assert.Equal(t, "B", events[1].Data.AI)
	assert.Equal(t, "A", events[2].Data.AI)
	assert.Equal(t, "B", events[3].Data.AI)

	last := events[4]
	assert.Equal(t, entity.EventComplete, last.Type)
	assert.Equal(t, conv.ID, last.Data.ConversationID)
	assert.Equal(t, 4, last.Data.TotalMessages)

	assert.Equal(t, entity.SessionCompleted, sess.State())

	// Every turn was persisted.
	stored, err := store.Get(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 4)
}

func TestTurnScheduler_AgentFailureIsTerminal(t *testing.T) {
	store := inmemory.NewConversationStore()
	conv := newTestConversation(t, store)

	boom := errors.New("rate limited")
	gens := []spi.Generator{
		&fakeGenerator{name: "A", fn: func(context.Context, string) (string, error) { return "fine", nil }},
		&fakeGenerator{name: "B", fn: func(context.Context, string) (string, error) { return "", boom }},
	}
	roster, err := NewRoster(gens)
	require.NoError(t, err)

	scheduler := NewTurnScheduler(roster, store, testSchedulerConfig())
	manager := NewSessionManager(time.Second)

	sr, sw := schema.Pipe[*entity.ChatEvent](20)
	sess, err := manager.Start(conv.ID, sw)
	require.NoError(t, err)

	scheduler.Run(sess, conv, 6)
	events := drainEvents(t, sr)

	// One good turn, then the failure ends the run.
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventMessage, events[0].Type)

	last := events[1]
	assert.Equal(t, entity.EventError, last.Type)
	assert.Equal(t, "B", last.Data.AI)
	assert.Contains(t, last.Data.Error, "rate limited")

	assert.Equal(t, entity.SessionFailed, sess.State())

	// No partial message for the failed turn.
	stored, err := store.Get(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 1)
}

func TestTurnScheduler_CancelAppendsStopNotice(t *testing.T) {
	store := inmemory.NewConversationStore()
	conv := newTestConversation(t, store)

	started := make(chan struct{})
	gens := []spi.Generator{
		&fakeGenerator{name: "A", fn: func(ctx context.Context, _ string) (string, error) {
			select {
			case started <- struct{}{}:
			default:
			}
			<-ctx.Done()
			return "", ctx.Err()
		}},
	}
	roster, err := NewRoster(gens)
	require.NoError(t, err)

	scheduler := NewTurnScheduler(roster, store, testSchedulerConfig())
	manager := NewSessionManager(time.Second)

	sr, sw := schema.Pipe[*entity.ChatEvent](20)
	sess, err := manager.Start(conv.ID, sw)
	require.NoError(t, err)

	go scheduler.Run(sess, conv, 5)

	<-started
	manager.Cancel(conv.ID)

	events := drainEvents(t, sr)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, entity.EventStopped, last.Type)
	assert.Equal(t, conv.ID, last.Data.ConversationID)
	assert.Equal(t, entity.SessionCancelled, sess.State())

	// The stop notice was recorded in the transcript.
	stored, err := store.Get(context.Background(), conv.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.Messages)
	notice := stored.Messages[len(stored.Messages)-1]
	assert.Equal(t, entity.AuthorSystem, notice.Author)
	assert.Equal(t, StopNotice, notice.Text)
}

func TestTurnScheduler_ContinuationKeepsTurnIndicesContiguous(t *testing.T) {
	store := inmemory.NewConversationStore()
	conv := newTestConversation(t, store)

	// Simulate a prior run of three agent turns plus a steering message.
	prior := []*entity.Message{
		entity.NewAgentMessage("A", "one", 1),
		entity.NewAgentMessage("B", "two", 2),
		entity.NewAgentMessage("A", "three", 3),
	}
	conv.Append(prior...)
	require.NoError(t, store.AppendMessages(context.Background(), conv.ID, prior))

	user := entity.NewUserMessage("keep going", conv.LastTurn())
	conv.Append(user)
	require.NoError(t, store.AppendMessages(context.Background(), conv.ID, []*entity.Message{user}))

	gens := []spi.Generator{
		&fakeGenerator{name: "A"},
		&fakeGenerator{name: "B"},
	}
	roster, err := NewRoster(gens)
	require.NoError(t, err)

	scheduler := NewTurnScheduler(roster, store, testSchedulerConfig())
	manager := NewSessionManager(time.Second)

	sr, sw := schema.Pipe[*entity.ChatEvent](20)
	sess, err := manager.Start(conv.ID, sw)
	require.NoError(t, err)

	scheduler.Run(sess, conv, 2)
	events := drainEvents(t, sr)

	require.Len(t, events, 3)
	assert.Equal(t, 4, events[0].Data.Turn)
	assert.Equal(t, "B", events[0].Data.AI)
	assert.Equal(t, 5, events[1].Data.Turn)
	assert.Equal(t, "A", events[1].Data.AI)
}

func TestTurnScheduler_PromptCarriesTrailingWindow(t *testing.T) {
	store := inmemory.NewConversationStore()
	conv := newTestConversation(t, store)

	for i := 1; i <= 7; i++ {
		msg := entity.NewAgentMessage("A", fmt.Sprintf("msg-%d", i), i)
		conv.Append(msg)
	}

	var seenPrompt string
	gens := []spi.Generator{
		&fakeGenerator{name: "A", fn: func(_ context.Context, prompt string) (string, error) {
			if seenPrompt == "" {
				seenPrompt = prompt
			}
			return "next", nil
		}},
	}
	roster, err := NewRoster(gens)
	require.NoError(t, err)

	cfg := testSchedulerConfig()
	cfg.HistoryWindow = 3
	scheduler := NewTurnScheduler(roster, store, cfg)
	manager := NewSessionManager(time.Second)

	sr, sw := schema.Pipe[*entity.ChatEvent](20)
	sess, err := manager.Start(conv.ID, sw)
	require.NoError(t, err)

	scheduler.Run(sess, conv, 1)
	drainEvents(t, sr)

	assert.NotContains(t, seenPrompt, "msg-4")
	assert.Contains(t, seenPrompt, "msg-5")
	assert.Contains(t, seenPrompt, "msg-6")
	assert.Contains(t, seenPrompt, "msg-7")
}

func TestTurnScheduler_ExactlyOneTerminalEvent(t *testing.T) {
	store := inmemory.NewConversationStore()
	conv := newTestConversation(t, store)

	roster, err := NewRoster([]spi.Generator{&fakeGenerator{name: "A"}})
	require.NoError(t, err)

	scheduler := NewTurnScheduler(roster, store, testSchedulerConfig())
	manager := NewSessionManager(time.Second)

	sr, sw := schema.Pipe[*entity.ChatEvent](20)
	sess, err := manager.Start(conv.ID, sw)
	require.NoError(t, err)

	scheduler.Run(sess, conv, 3)

	// A late cancel after completion must not produce a second terminal.
	manager.Cancel(conv.ID)

	events := drainEvents(t, sr)
	terminals := 0
	for _, ev := range events {
		if ev.IsTerminal() {
			terminals++
		}
	}
	assert.Equal(t, 1, terminals)
	assert.True(t, events[len(events)-1].IsTerminal())
}
