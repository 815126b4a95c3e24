package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/service/runtime"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
	"github.com/kiosk404/parley/internal/parlor/service/chat/store/inmemory"
	"github.com/kiosk404/parley/internal/parlor/service/llm/provider/spi"
)

type stubGenerator struct {
	name string
	fn   func(ctx context.Context, prompt string) (string, error)
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if s.fn != nil {
		return s.fn(ctx, prompt)
	}
	return "reply from " + s.name, nil
}

type testHarness struct {
	svc   ChatService
	store *inmemory.ConversationStore
}

func newTestHarness(t *testing.T, gens ...spi.Generator) *testHarness {
	t.Helper()
	if len(gens) == 0 {
		gens = []spi.Generator{
			&stubGenerator{name: "GPT-4"},
			&stubGenerator{name: "Claude"},
		}
	}

	store := inmemory.NewConversationStore()
	roster, err := runtime.NewRoster(gens)
	require.NoError(t, err)

	scheduler := runtime.NewTurnScheduler(roster, store, runtime.SchedulerConfig{
		TurnDelay:     time.Millisecond,
		HistoryWindow: 5,
		CallTimeout:   time.Second,
	})
	manager := runtime.NewSessionManager(50 * time.Millisecond)

	costs := map[string]genericoptions.AgentCost{
		"GPT-4":  {Input: 10, Output: 30},
		"Claude": {Input: 3, Output: 15},
	}

	return &testHarness{
		svc:   NewChatService(store, manager, scheduler, costs, 10, 50),
		store: store,
	}
}

func drain(t *testing.T, result *StartChatResult) []*entity.ChatEvent {
	t.Helper()
	var events []*entity.ChatEvent
	for {
		ev, err := result.Events.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
	return events
}

func TestChatService_StartChatRunsToCompletion(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.svc.StartChat(context.Background(), &StartChatRequest{
		Topic: "distributed consensus",
		Turns: 4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ConversationID)
	assert.Equal(t, 4, result.Turns)

	events := drain(t, result)
	require.Len(t, events, 6)

	assert.Equal(t, entity.EventStart, events[0].Type)
	assert.Equal(t, "distributed consensus", events[0].Data.Topic)
	assert.Equal(t, 4, events[0].Data.Turns)

	for i := 1; i <= 4; i++ {
		assert.Equal(t, entity.EventMessage, events[i].Type)
		assert.Equal(t, i, events[i].Data.Turn)
	}
	assert.Equal(t, entity.EventComplete, events[5].Type)
	assert.Equal(t, 4, events[5].Data.TotalMessages)

	stored, err := h.store.Get(context.Background(), result.ConversationID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 4)
}

func TestChatService_TurnBudgetClamping(t *testing.T) {
	h := newTestHarness(t)

	// Zero turns fall back to the default.
	result, err := h.svc.StartChat(context.Background(), &StartChatRequest{Topic: "a"})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Turns)
	drain(t, result)

	// Oversized budgets are capped.
	result, err = h.svc.StartChat(context.Background(), &StartChatRequest{Topic: "b", Turns: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, result.Turns)
	drain(t, result)
}

func TestChatService_ContinuationAppendsSteeringMessage(t *testing.T) {
	h := newTestHarness(t)

	first, err := h.svc.StartChat(context.Background(), &StartChatRequest{Topic: "origins", Turns: 2})
	require.NoError(t, err)
	drain(t, first)

	second, err := h.svc.StartChat(context.Background(), &StartChatRequest{
		Topic:          "tell me more",
		Turns:          2,
		ConversationID: first.ConversationID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	events := drain(t, second)

	// Agent turn indices continue past the first run.
	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, 3, events[1].Data.Turn)
	assert.Equal(t, 4, events[2].Data.Turn)

	stored, err := h.store.Get(context.Background(), first.ConversationID)
	require.NoError(t, err)
	// 2 + steering + 2.
	require.Len(t, stored.Messages, 5)
	steering := stored.Messages[2]
	assert.Equal(t, entity.AuthorUser, steering.Author)
	assert.Equal(t, "tell me more", steering.Text)
	assert.Equal(t, 2, steering.Turn)
}

func TestChatService_ContinuationUnknownConversation(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.svc.StartChat(context.Background(), &StartChatRequest{
		Topic:          "hi",
		ConversationID: "missing",
	})
	assert.ErrorIs(t, err, errno.ErrConversationNotFound)
}

func TestChatService_ConcurrentStartConflicts(t *testing.T) {
	block := make(chan struct{})
	blocking := &stubGenerator{name: "Slow", fn: func(ctx context.Context, _ string) (string, error) {
		select {
		case <-block:
			return "done", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}}
	h := newTestHarness(t, blocking)

	first, err := h.svc.StartChat(context.Background(), &StartChatRequest{Topic: "long debate", Turns: 1})
	require.NoError(t, err)

	_, err = h.svc.StartChat(context.Background(), &StartChatRequest{
		Topic:          "barge in",
		ConversationID: first.ConversationID,
	})
	assert.ErrorIs(t, err, errno.ErrConversationActive)

	close(block)
	drain(t, first)
}

func TestChatService_StopChatEndsStream(t *testing.T) {
	blocking := &stubGenerator{name: "Slow", fn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	h := newTestHarness(t, blocking)

	result, err := h.svc.StartChat(context.Background(), &StartChatRequest{Topic: "unending", Turns: 5})
	require.NoError(t, err)

	require.NoError(t, h.svc.StopChat(context.Background(), result.ConversationID))

	events := drain(t, result)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, entity.EventStopped, last.Type)

	// Stopping again is a no-op.
	assert.NoError(t, h.svc.StopChat(context.Background(), result.ConversationID))
}

func TestChatService_StopChatAllWithEmptyID(t *testing.T) {
	blocking := &stubGenerator{name: "Slow", fn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	h := newTestHarness(t, blocking)

	r1, err := h.svc.StartChat(context.Background(), &StartChatRequest{Topic: "one", Turns: 3})
	require.NoError(t, err)
	r2, err := h.svc.StartChat(context.Background(), &StartChatRequest{Topic: "two", Turns: 3})
	require.NoError(t, err)

	require.NoError(t, h.svc.StopChat(context.Background(), ""))

	for _, r := range []*StartChatResult{r1, r2} {
		events := drain(t, r)
		require.NotEmpty(t, events)
		assert.Equal(t, entity.EventStopped, events[len(events)-1].Type)
	}
}

func TestChatService_ListConversationsNewestFirst(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	old := &entity.Conversation{ID: "old", Topic: "old topic", CreatedAt: time.Now().Add(-time.Hour)}
	recent := &entity.Conversation{ID: "recent", Topic: "recent topic", CreatedAt: time.Now()}
	require.NoError(t, h.store.Create(ctx, old))
	require.NoError(t, h.store.Create(ctx, recent))

	summaries, err := h.svc.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "recent", summaries[0].ID)
	assert.Equal(t, "old", summaries[1].ID)
}

func TestChatService_ListTruncatesPreview(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	conv := &entity.Conversation{ID: "c1", Topic: "t", CreatedAt: time.Now()}
	require.NoError(t, h.store.Create(ctx, conv))
	require.NoError(t, h.store.AppendMessages(ctx, "c1", []*entity.Message{
		entity.NewAgentMessage("A", strings.Repeat("z", 120), 1),
	}))

	summaries, err := h.svc.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, strings.Repeat("z", 50)+"...", summaries[0].LastMessage)
}

func TestChatService_UsageReport(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	conv := &entity.Conversation{ID: "c1", Topic: "t", CreatedAt: time.Now()}
	require.NoError(t, h.store.Create(ctx, conv))
	require.NoError(t, h.store.AppendMessages(ctx, "c1", []*entity.Message{
		entity.NewAgentMessage("GPT-4", strings.Repeat("a", 400), 1),  // 100 tokens
		entity.NewAgentMessage("Claude", strings.Repeat("b", 200), 2), // 50 tokens
		entity.NewAgentMessage("GPT-4", strings.Repeat("c", 400), 3),  // 100 tokens
	}))

	report, err := h.svc.UsageReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Conversations)
	assert.Equal(t, 3, report.TotalMessages)
	require.Len(t, report.Agents, 2)

	// Agents are sorted by name.
	claude := report.Agents[0]
	gpt := report.Agents[1]

	assert.Equal(t, "Claude", claude.Name)
	assert.Equal(t, int64(50), claude.EstimatedTokens)
	assert.InDelta(t, 50.0/1e6*15, claude.EstimatedCost, 1e-9)

	assert.Equal(t, "GPT-4", gpt.Name)
	assert.Equal(t, 2, gpt.Messages)
	assert.Equal(t, int64(200), gpt.EstimatedTokens)
	assert.InDelta(t, 200.0/1e6*30, gpt.EstimatedCost, 1e-9)
}
