package parlor

import (
	"context"
	"fmt"

	"github.com/kiosk404/parley/internal/parlor/config"
	"github.com/kiosk404/parley/internal/parlor/service/chat"
	"github.com/kiosk404/parley/internal/parlor/service/llm"
	genericapiserver "github.com/kiosk404/parley/internal/pkg/server"
	"github.com/kiosk404/parley/pkg/logger"
)

type apiServer struct {
	genericAPIServer *genericapiserver.GenericAPIServer

	llmModule  *llm.Module
	chatModule *chat.Module
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}

	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	// Initialize LLM module (K8S-style: Config → Complete → New).
	llmCfg := &llm.Config{
		Roster: cfg.RosterOptions,
	}
	llmModule, err := llmCfg.Complete().New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM module: %w", err)
	}
	logger.Info("[Parlor] LLM module initialized successfully")

	// Initialize Chat module (K8S-style: Config → Complete → New).
	chatCfg := &chat.Config{
		TurnDelay:     cfg.ChatOptions.TurnDelay,
		HistoryWindow: cfg.ChatOptions.HistoryWindow,
		CallTimeout:   cfg.ChatOptions.CallTimeout,
		GraceWindow:   cfg.ChatOptions.GraceWindow,
		DefaultTurns:  cfg.ChatOptions.DefaultTurns,
		MaxTurns:      cfg.ChatOptions.MaxTurns,
		StoreType:     cfg.ChatOptions.StoreType,
		BoltDBPath:    cfg.ChatOptions.BoltDBPath,
	}
	chatModule, err := chatCfg.Complete().New(context.Background(), chat.Dependencies{
		LLM: llmModule,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Chat module: %w", err)
	}
	logger.Info("[Parlor] Chat module initialized successfully")

	server := &apiServer{
		genericAPIServer: genericServer,
		llmModule:        llmModule,
		chatModule:       chatModule,
	}

	return server, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	gatewayCfg := DefaultGatewayConfig()

	initRouter(s.genericAPIServer.Engine, &routerDeps{
		chatService: s.chatModule.Service,
		authConfig:  &gatewayCfg.Auth,
	})

	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	// Live sessions are cancelled and the store handle released once the
	// HTTP server has drained.
	defer func() {
		if err := s.chatModule.Close(); err != nil {
			logger.Warn("[Parlor] close chat module: %v", err)
		}
	}()

	return s.genericAPIServer.Run()
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.GenericServerRunOptions.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	return
}
