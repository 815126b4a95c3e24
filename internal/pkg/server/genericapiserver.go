// Package server provides the generic HTTP serving layer built on gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/kiosk404/parley/internal/pkg/core"
	"github.com/kiosk404/parley/pkg/logger"
)

// GenericAPIServer wraps a gin engine with lifecycle management: it owns
// the http.Server, installs the generic routes and shuts down gracefully
// on SIGINT/SIGTERM.
type GenericAPIServer struct {
	*Config

	// Engine is the gin engine routes are registered on.
	Engine *gin.Engine

	insecureServer *http.Server
}

func (s *GenericAPIServer) setup() {
	gin.SetMode(s.Mode)
	s.Engine = gin.New()
	s.Engine.Use(gin.Recovery())

	s.installGenericAPIs()
}

func (s *GenericAPIServer) installGenericAPIs() {
	if s.Healthz {
		s.Engine.GET("/healthz", func(c *gin.Context) {
			core.WriteResponse(c, nil, map[string]string{"status": "ok"})
		})
	}
	if s.EnableProfiling {
		pprof.Register(s.Engine)
	}
}

// Address returns the listen address in host:port form.
func (s *GenericAPIServer) Address() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)
}

// Run starts serving and blocks until SIGINT/SIGTERM, then drains
// in-flight requests with a 10s shutdown window.
func (s *GenericAPIServer) Run() error {
	s.insecureServer = &http.Server{
		Addr:    s.Address(),
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[server] serving on http://%s", s.Address())
		if err := s.insecureServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("[server] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.insecureServer.Shutdown(ctx); err != nil {
		logger.Warn("[server] graceful shutdown failed: %v", err)
		return err
	}
	return <-errCh
}

// Close shuts the server down immediately.
func (s *GenericAPIServer) Close() {
	if s.insecureServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.insecureServer.Shutdown(ctx); err != nil {
		logger.Warn("[server] close failed: %v", err)
	}
}
