package service

import (
	"context"
	"sort"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	genericoptions "github.com/kiosk404/parley/internal/pkg/options"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/repo"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/service/runtime"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
	"github.com/kiosk404/parley/pkg/logger"
	"github.com/kiosk404/parley/pkg/utils/safego"
)

// charsPerToken is the crude length-based token estimate used by the
// usage report.
const charsPerToken = 4

// eventBuffer is the pipe capacity between scheduler and SSE handler.
const eventBuffer = 20

type chatService struct {
	repo      repo.ConversationRepository
	manager   *runtime.SessionManager
	scheduler *runtime.TurnScheduler
	costs     map[string]genericoptions.AgentCost

	defaultTurns int
	maxTurns     int
}

// NewChatService assembles the application service from its runtime parts.
func NewChatService(
	convRepo repo.ConversationRepository,
	manager *runtime.SessionManager,
	scheduler *runtime.TurnScheduler,
	costs map[string]genericoptions.AgentCost,
	defaultTurns, maxTurns int,
) ChatService {
	if defaultTurns <= 0 {
		defaultTurns = 10
	}
	if maxTurns < defaultTurns {
		maxTurns = defaultTurns
	}
	return &chatService{
		repo:         convRepo,
		manager:      manager,
		scheduler:    scheduler,
		costs:        costs,
		defaultTurns: defaultTurns,
		maxTurns:     maxTurns,
	}
}

func (s *chatService) StartChat(ctx context.Context, req *StartChatRequest) (*StartChatResult, error) {
	turns := req.Turns
	if turns <= 0 {
		turns = s.defaultTurns
	}
	if turns > s.maxTurns {
		turns = s.maxTurns
	}

	var conv *entity.Conversation
	if req.ConversationID != "" {
		// Reject before touching the transcript so a conflicting request
		// leaves no steering message behind.
		if s.manager.Get(req.ConversationID) != nil {
			return nil, errno.ErrConversationActive
		}

		// Continuation: load the transcript and record the steering
		// message before any agent speaks. It is anchored at the current
		// last turn so agent indices stay contiguous across it.
		existing, err := s.repo.Get(ctx, req.ConversationID)
		if err != nil {
			return nil, err
		}
		conv = existing

		userMsg := entity.NewUserMessage(req.Topic, conv.LastTurn())
		conv.Append(userMsg)
		if err := s.repo.AppendMessages(ctx, conv.ID, []*entity.Message{userMsg}); err != nil {
			return nil, err
		}
	} else {
		conv = &entity.Conversation{
			ID:        uuid.New().String(),
			Topic:     req.Topic,
			CreatedAt: time.Now(),
			Messages:  make([]*entity.Message, 0),
		}
		if err := s.repo.Create(ctx, conv); err != nil {
			return nil, err
		}
	}

	sr, sw := schema.Pipe[*entity.ChatEvent](eventBuffer)

	sess, err := s.manager.Start(conv.ID, sw)
	if err != nil {
		sw.Close()
		return nil, err
	}

	sw.Send(entity.NewStartEvent(conv.Topic, turns), nil)

	safego.Go(sess.Context(), func() {
		s.scheduler.Run(sess, conv, turns)
	})

	logger.InfoX(pkg.ModuleName, "[ChatService] conversation %s started (turns=%d, continuation=%v)",
		conv.ID, turns, req.ConversationID != "")

	return &StartChatResult{
		ConversationID: conv.ID,
		Turns:          turns,
		Events:         sr,
	}, nil
}

func (s *chatService) StopChat(_ context.Context, conversationID string) error {
	if conversationID == "" {
		s.manager.CancelAll()
		return nil
	}
	s.manager.Cancel(conversationID)
	return nil
}

func (s *chatService) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	return s.repo.Get(ctx, id)
}

func (s *chatService) ListConversations(ctx context.Context) ([]*entity.Summary, error) {
	convs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.Summary, 0, len(convs))
	for _, conv := range convs {
		summaries = append(summaries, conv.Summarize())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (s *chatService) UsageReport(ctx context.Context) (*entity.UsageReport, error) {
	convs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	byAgent := make(map[string]*entity.AgentUsage)
	report := &entity.UsageReport{Conversations: len(convs)}

	for _, conv := range convs {
		for _, msg := range conv.Messages {
			report.TotalMessages++
			u, ok := byAgent[msg.Author]
			if !ok {
				u = &entity.AgentUsage{Name: msg.Author}
				byAgent[msg.Author] = u
			}
			u.Messages++
			u.EstimatedTokens += estimateTokens(msg.Text)
		}
	}

	for name, u := range byAgent {
		if cost, ok := s.costs[name]; ok {
			u.EstimatedCost = float64(u.EstimatedTokens) / 1e6 * cost.Output
		}
		report.Agents = append(report.Agents, *u)
	}
	sort.Slice(report.Agents, func(i, j int) bool {
		return report.Agents[i].Name < report.Agents[j].Name
	})

	return report, nil
}

// estimateTokens approximates the token count of a text from its length.
func estimateTokens(text string) int64 {
	n := len(text)
	return int64((n + charsPerToken - 1) / charsPerToken)
}
