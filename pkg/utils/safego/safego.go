// Package safego launches goroutines that cannot crash the process.
package safego

import (
	"context"
	"runtime/debug"

	"github.com/kiosk404/parley/pkg/logger"
)

// Go runs fn in a new goroutine and recovers any panic, logging the stack
// instead of letting it take the process down. The context is accepted for
// call-site symmetry; fn is expected to observe it on its own.
func Go(_ context.Context, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("[safego] goroutine panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
