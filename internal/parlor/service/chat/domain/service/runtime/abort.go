package runtime

import (
	"context"
	"sync"

	"github.com/kiosk404/parley/internal/parlor/service/chat/pkg/errno"
	"github.com/kiosk404/parley/pkg/logger"
)

// AbortController manages session cancellation.
//
// It wraps context.WithCancel so that aborting a session interrupts both
// the in-flight model call and the inter-turn pause.
type AbortController struct {
	ctx            context.Context
	cancel         context.CancelFunc
	mu             sync.Mutex
	down           bool
	conversationID string
}

// NewAbortController creates a controller rooted at the given parent context.
func NewAbortController(parent context.Context, conversationID string) *AbortController {
	ctx, cancel := context.WithCancel(parent)
	return &AbortController{
		ctx:            ctx,
		cancel:         cancel,
		conversationID: conversationID,
	}
}

// Context returns the controlled context.
// Use this context for all downstream operations.
func (ac *AbortController) Context() context.Context {
	return ac.ctx
}

// Abort cancels the session and marks it as aborted.
//
// It is safe to call Abort multiple times.
func (ac *AbortController) Abort() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	if ac.down {
		return
	}
	ac.down = true
	ac.cancel()
	logger.Info("[AbortController] abort conversation %s", ac.conversationID)
}

// IsAborted returns true if the session is aborted.
func (ac *AbortController) IsAborted() bool {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	if ac.down {
		return true
	}
	select {
	case <-ac.ctx.Done():
		return true
	default:
		return false
	}
}

// CheckAborted returns errno.ErrAborted if the session is aborted.
func (ac *AbortController) CheckAborted() error {
	if ac.IsAborted() {
		return errno.ErrAborted
	}
	return nil
}

// CleanUp releases the controller's context resources.
func (ac *AbortController) CleanUp() {
	ac.cancel()
}
