// Package chat is the round-table conversation module: scheduler, session
// lifecycle, transcript persistence and the application service over them.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/repo"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/service"
	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/service/runtime"
	boltdbStore "github.com/kiosk404/parley/internal/parlor/service/chat/store/boltdb"
	"github.com/kiosk404/parley/internal/parlor/service/chat/store/inmemory"
	"github.com/kiosk404/parley/internal/parlor/service/llm"
	"github.com/kiosk404/parley/pkg/logger"
)

// Config holds the configuration for the chat module.
// Follows the Config → Complete() → New(ctx, deps) wiring convention.
type Config struct {
	// TurnDelay is the pause between consecutive turns (default: 1s).
	TurnDelay time.Duration `json:"turn_delay,omitempty"`

	// HistoryWindow is how many trailing messages each prompt carries (default: 5).
	HistoryWindow int `json:"history_window,omitempty"`

	// CallTimeout bounds a single model call (default: 60s).
	CallTimeout time.Duration `json:"call_timeout,omitempty"`

	// GraceWindow is the cancellation wind-down window (default: 1s).
	GraceWindow time.Duration `json:"grace_window,omitempty"`

	// DefaultTurns is the budget used when a request names none (default: 10).
	DefaultTurns int `json:"default_turns,omitempty"`

	// MaxTurns caps the per-request budget (default: 50).
	MaxTurns int `json:"max_turns,omitempty"`

	// StoreType selects the persistence backend: "inmemory" or "boltdb".
	// Default: "inmemory".
	StoreType string `json:"store_type,omitempty"`

	// BoltDBPath is the file path for BoltDB storage (when StoreType="boltdb").
	// Default: "data/parley.db".
	BoltDBPath string `json:"boltdb_path,omitempty"`
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.TurnDelay <= 0 {
		c.TurnDelay = time.Second
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = 5
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 60 * time.Second
	}
	if c.GraceWindow <= 0 {
		c.GraceWindow = time.Second
	}
	if c.DefaultTurns <= 0 {
		c.DefaultTurns = 10
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = 50
	}
	if c.StoreType == "" {
		c.StoreType = "inmemory"
	}
	if c.BoltDBPath == "" {
		c.BoltDBPath = "data/parley.db"
	}
	return CompletedConfig{c}
}

// Dependencies holds the external modules required by the chat module.
type Dependencies struct {
	LLM *llm.Module
}

// Module is the top-level chat module.
type Module struct {
	Service service.ChatService
	Manager *runtime.SessionManager
	boltDB  *boltdbStore.DB // nil when using inmemory store
}

// Close cancels live sessions and releases resources held by the module.
func (m *Module) Close() error {
	if m.Manager != nil {
		m.Manager.CancelAll()
	}
	if m.boltDB != nil {
		return m.boltDB.Close()
	}
	return nil
}

// New creates and initializes the chat module from a completed config.
func (c CompletedConfig) New(_ context.Context, deps Dependencies) (*Module, error) {
	logger.Info("[Chat] creating chat module...")

	if deps.LLM == nil {
		return nil, fmt.Errorf("LLM module dependency is required")
	}

	// Infrastructure layer: select store backend.
	var (
		convStore repo.ConversationRepository
		boltDB    *boltdbStore.DB
	)

	switch c.StoreType {
	case "boltdb":
		var err error
		boltDB, err = boltdbStore.Open(c.BoltDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open boltdb at %s: %w", c.BoltDBPath, err)
		}
		convStore = boltdbStore.NewConversationStore(boltDB)
		logger.Info("[Chat] using BoltDB store at %s", c.BoltDBPath)
	default:
		convStore = inmemory.NewConversationStore()
		logger.Info("[Chat] using in-memory store")
	}

	roster, err := runtime.NewRoster(deps.LLM.Generators)
	if err != nil {
		return nil, err
	}

	scheduler := runtime.NewTurnScheduler(roster, convStore, runtime.SchedulerConfig{
		TurnDelay:     c.TurnDelay,
		HistoryWindow: c.HistoryWindow,
		CallTimeout:   c.CallTimeout,
	})
	manager := runtime.NewSessionManager(c.GraceWindow)

	svc := service.NewChatService(convStore, manager, scheduler, deps.LLM.Costs, c.DefaultTurns, c.MaxTurns)

	logger.Info("[Chat] chat module initialized (store=%s, roster=%v, delay=%s, window=%d, default_turns=%d)",
		c.StoreType, roster.Names(), c.TurnDelay, c.HistoryWindow, c.DefaultTurns)

	return &Module{
		Service: svc,
		Manager: manager,
		boltDB:  boltDB,
	}, nil
}
