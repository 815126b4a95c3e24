package runtime

import (
	"context"
	"time"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/repo"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg"
	"github.com/kiosk404/parley/pkg/logger"
)

// StopNotice is the system message appended to a transcript when its
// session is cancelled.
const StopNotice = "Conversation stopped by user"

// SchedulerConfig holds the turn loop parameters.
type SchedulerConfig struct {
	// TurnDelay is the pause before every step but the first.
	TurnDelay time.Duration
	// HistoryWindow is how many trailing messages each prompt carries.
	HistoryWindow int
	// CallTimeout bounds a single model call.
	CallTimeout time.Duration
}

// TurnScheduler drives the round-robin turn loop of one conversation.
//
// Per step while running: pick the agent owning the next global turn
// index, build the prompt from the trailing history window, call the
// model under the per-call timeout, then append + persist + emit. The
// loop ends in exactly one of three terminal states:
//
//	completed - the turn budget ran out
//	failed    - an agent call failed (no partial message is recorded)
//	cancelled - the session context was cancelled at a suspension point
type TurnScheduler struct {
	roster  *Roster
	repo    repo.ConversationRepository
	prompts *PromptBuilder
	cfg     SchedulerConfig
}

// NewTurnScheduler creates a scheduler with defaults applied.
func NewTurnScheduler(roster *Roster, convRepo repo.ConversationRepository, cfg SchedulerConfig) *TurnScheduler {
	if cfg.TurnDelay <= 0 {
		cfg.TurnDelay = time.Second
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 5
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 60 * time.Second
	}
	return &TurnScheduler{
		roster:  roster,
		repo:    convRepo,
		prompts: NewPromptBuilder(),
		cfg:     cfg,
	}
}

// Run executes budget turns on the conversation and finishes the session.
// It is the async execution body launched by the chat service inside
// safego.Go; conv is owned by this goroutine for the whole run.
func (s *TurnScheduler) Run(sess *Session, conv *entity.Conversation, budget int) {
	ctx := sess.Context()
	sess.setState(entity.SessionRunning)

	for i := 0; i < budget; i++ {
		if i > 0 && !s.pause(ctx) {
			s.stop(sess, conv)
			return
		}
		if ctx.Err() != nil {
			s.stop(sess, conv)
			return
		}

		turn := conv.LastTurn() + 1
		gen := s.roster.Pick(turn)
		prompt := s.prompts.Build(gen.Name(), conv.Topic, conv.Window(s.cfg.HistoryWindow))

		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		text, err := gen.Generate(callCtx, prompt)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				s.stop(sess, conv)
				return
			}
			logger.WarnX(pkg.ModuleName, "[Scheduler] conversation %s turn %d: agent %s failed: %v",
				conv.ID, turn, gen.Name(), err)
			sess.Finish(entity.SessionFailed, entity.NewErrorEvent(gen.Name(), err))
			return
		}

		msg := entity.NewAgentMessage(gen.Name(), text, turn)
		conv.Append(msg)
		if err := s.repo.AppendMessages(ctx, conv.ID, []*entity.Message{msg}); err != nil {
			logger.WarnX(pkg.ModuleName, "[Scheduler] conversation %s turn %d: persist failed: %v",
				conv.ID, turn, err)
		}
		sess.Emit(entity.NewMessageEvent(msg))
	}

	sess.Finish(entity.SessionCompleted, entity.NewCompleteEvent(conv.ID, len(conv.Messages)))
}

// pause waits out the inter-turn delay; returns false if the session was
// cancelled while waiting.
func (s *TurnScheduler) pause(ctx context.Context) bool {
	timer := time.NewTimer(s.cfg.TurnDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// stop is the graceful cancellation path: record the stop notice and
// finish with a stopped event. The session context is already cancelled
// here, so the notice is persisted on a fresh context.
func (s *TurnScheduler) stop(sess *Session, conv *entity.Conversation) {
	notice := entity.NewSystemMessage(StopNotice, conv.LastTurn())
	conv.Append(notice)
	if err := s.repo.AppendMessages(context.Background(), conv.ID, []*entity.Message{notice}); err != nil {
		logger.WarnX(pkg.ModuleName, "[Scheduler] conversation %s: persist stop notice failed: %v", conv.ID, err)
	}
	sess.Finish(entity.SessionCancelled, entity.NewStoppedEvent(conv.ID))
}
