package entity

// SessionState is the lifecycle state of a live conversation session.
// State machine: idle -> running -> completed | cancelled | failed.
type SessionState string

const (
	SessionIdle      SessionState = "idle"
	SessionRunning   SessionState = "running"
	SessionCompleted SessionState = "completed"
	SessionCancelled SessionState = "cancelled"
	SessionFailed    SessionState = "failed"
)

// IsTerminal reports whether the state admits no further transitions.
func (s SessionState) IsTerminal() bool {
	switch s {
	case SessionCompleted, SessionCancelled, SessionFailed:
		return true
	}
	return false
}
