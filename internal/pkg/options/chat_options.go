package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ChatOptions configures the round-table conversation engine.
type ChatOptions struct {
	// TurnDelay is the pause between consecutive turns.
	TurnDelay time.Duration `json:"turn-delay"     mapstructure:"turn-delay"`
	// HistoryWindow is how many trailing messages each prompt carries.
	HistoryWindow int `json:"history-window" mapstructure:"history-window"`
	// CallTimeout bounds a single model call.
	CallTimeout time.Duration `json:"call-timeout"   mapstructure:"call-timeout"`
	// GraceWindow is how long a cancelled session may take to wind down
	// before it is terminated forcibly.
	GraceWindow time.Duration `json:"grace-window"   mapstructure:"grace-window"`
	// DefaultTurns is the turn budget used when a request does not name one.
	DefaultTurns int `json:"default-turns"  mapstructure:"default-turns"`
	// MaxTurns caps the turn budget of a single request.
	MaxTurns int `json:"max-turns"      mapstructure:"max-turns"`
	// StoreType selects the transcript backend: "inmemory" or "boltdb".
	StoreType string `json:"store-type"     mapstructure:"store-type"`
	// BoltDBPath is the database file used when StoreType is "boltdb".
	BoltDBPath string `json:"boltdb-path"    mapstructure:"boltdb-path"`
}

// NewChatOptions returns chat options with defaults applied.
func NewChatOptions() *ChatOptions {
	return &ChatOptions{
		TurnDelay:     time.Second,
		HistoryWindow: 5,
		CallTimeout:   60 * time.Second,
		GraceWindow:   time.Second,
		DefaultTurns:  10,
		MaxTurns:      50,
		StoreType:     "boltdb",
		BoltDBPath:    "data/parley.db",
	}
}

// Validate checks the chat options.
func (o *ChatOptions) Validate() []error {
	var errs []error
	if o.HistoryWindow < 1 {
		errs = append(errs, fmt.Errorf("history window %d must be at least 1", o.HistoryWindow))
	}
	if o.DefaultTurns < 1 {
		errs = append(errs, fmt.Errorf("default turns %d must be at least 1", o.DefaultTurns))
	}
	if o.MaxTurns < o.DefaultTurns {
		errs = append(errs, fmt.Errorf("max turns %d must not be below default turns %d", o.MaxTurns, o.DefaultTurns))
	}
	if o.StoreType != "inmemory" && o.StoreType != "boltdb" {
		errs = append(errs, fmt.Errorf("invalid store type %q, must be 'inmemory' or 'boltdb'", o.StoreType))
	}
	return errs
}

// AddFlags adds chat engine flags to the given flag set.
func (o *ChatOptions) AddFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&o.TurnDelay, "chat.turn-delay", o.TurnDelay, "Pause between consecutive conversation turns.")
	fs.IntVar(&o.HistoryWindow, "chat.history-window", o.HistoryWindow, "Number of trailing messages carried into each prompt.")
	fs.DurationVar(&o.CallTimeout, "chat.call-timeout", o.CallTimeout, "Timeout for a single model call.")
	fs.DurationVar(&o.GraceWindow, "chat.grace-window", o.GraceWindow, "Wind-down window for cancelled sessions before forced termination.")
	fs.IntVar(&o.DefaultTurns, "chat.default-turns", o.DefaultTurns, "Turn budget used when a request does not specify one.")
	fs.IntVar(&o.MaxTurns, "chat.max-turns", o.MaxTurns, "Upper bound on the per-request turn budget.")
	fs.StringVar(&o.StoreType, "chat.store-type", o.StoreType, "Transcript store backend: 'inmemory' or 'boltdb'.")
	fs.StringVar(&o.BoltDBPath, "chat.boltdb-path", o.BoltDBPath, "BoltDB file path for the transcript store.")
}
