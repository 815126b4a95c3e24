package errno

import (
	"errors"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationActive   = errors.New("conversation already has an active session")
	ErrEmptyRoster          = errors.New("roster has no agents")
	ErrAborted              = errors.New("session aborted")
)
