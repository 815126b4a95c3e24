package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg"
	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
	"github.com/kiosk404/parley/pkg/logger"
	"github.com/kiosk404/parley/pkg/utils/safego"
)

// Session is the live execution state of one running conversation. Every
// stream gets exactly one terminal event, always last: terminal emission,
// writer close and registry removal all funnel through finishOnce.
type Session struct {
	conversationID string
	abort          *AbortController
	sw             *schema.StreamWriter[*entity.ChatEvent]

	mu    sync.Mutex
	state entity.SessionState

	finishOnce sync.Once
	done       chan struct{}
	onTerminal func()
}

// ConversationID returns the conversation this session runs.
func (s *Session) ConversationID() string {
	return s.conversationID
}

// Context returns the session context; it is cancelled on Abort.
func (s *Session) Context() context.Context {
	return s.abort.Context()
}

// Abort requests graceful cancellation.
func (s *Session) Abort() {
	s.abort.Abort()
}

// State returns the current lifecycle state.
func (s *Session) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(state entity.SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Done is closed once the session reached a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Emit sends a non-terminal event to the stream. Events sent after the
// session finished are dropped.
func (s *Session) Emit(ev *entity.ChatEvent) {
	select {
	case <-s.done:
		return
	default:
	}
	s.sw.Send(ev, nil)
}

// Finish moves the session to a terminal state, emits the terminal event
// and closes the stream. Only the first call has any effect; the scheduler
// and the grace-window escalation may both race into it safely.
func (s *Session) Finish(state entity.SessionState, ev *entity.ChatEvent) {
	s.finishOnce.Do(func() {
		s.setState(state)
		s.sw.Send(ev, nil)
		s.sw.Close()
		close(s.done)
		s.abort.CleanUp()
		if s.onTerminal != nil {
			s.onTerminal()
		}
		logger.InfoX(pkg.ModuleName, "[Session] conversation %s -> %s", s.conversationID, state)
	})
}

// SessionManager tracks live sessions by conversation ID and enforces the
// single-live-session-per-conversation invariant.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	grace    time.Duration
}

// NewSessionManager creates a manager with the given grace window for
// cancellation escalation.
func NewSessionManager(grace time.Duration) *SessionManager {
	if grace <= 0 {
		grace = time.Second
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		grace:    grace,
	}
}

// Start registers a new session for the conversation and hands it the
// event writer. Returns errno.ErrConversationActive if one is already live.
func (m *SessionManager) Start(conversationID string, sw *schema.StreamWriter[*entity.ChatEvent]) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[conversationID]; ok {
		return nil, errno.ErrConversationActive
	}

	sess := &Session{
		conversationID: conversationID,
		abort:          NewAbortController(context.Background(), conversationID),
		sw:             sw,
		state:          entity.SessionIdle,
		done:           make(chan struct{}),
	}
	sess.onTerminal = func() { m.remove(conversationID) }
	m.sessions[conversationID] = sess

	return sess, nil
}

func (m *SessionManager) remove(conversationID string) {
	m.mu.Lock()
	delete(m.sessions, conversationID)
	m.mu.Unlock()
}

// Get returns the live session for a conversation, or nil.
func (m *SessionManager) Get(conversationID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[conversationID]
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Cancel requests cancellation of the conversation's live session.
// Unknown or already-finished conversations are a no-op. The graceful
// path cancels the session context and lets the scheduler wind down; if
// no terminal state is reached within the grace window the session is
// terminated forcibly with a stopped event.
func (m *SessionManager) Cancel(conversationID string) {
	sess := m.Get(conversationID)
	if sess == nil {
		return
	}

	sess.Abort()

	grace := m.grace
	safego.Go(context.Background(), func() {
		select {
		case <-sess.Done():
		case <-time.After(grace):
			logger.WarnX(pkg.ModuleName, "[SessionManager] conversation %s did not wind down within %s, terminating",
				conversationID, grace)
			sess.Finish(entity.SessionCancelled, entity.NewStoppedEvent(conversationID))
		}
	})
}

// CancelAll cancels every live session.
func (m *SessionManager) CancelAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Cancel(id)
	}
}
