// Package server binds the HTTP listener and ties its shutdown to the
// service lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/pkg/lifecycle"
)

// System is the HTTP listener of the service.
type System interface {
	// Addr is the bound address once Start has returned, the configured one before.
	Addr() string
	Start(lc *lifecycle.Coordinator) error
}

type server struct {
	http     *http.Server
	listener net.Listener
	logger   *slog.Logger
	drain    time.Duration
}

// New prepares a server for cfg. Diagnostic requests hold their connection for
// the whole pipeline run, so cfg.WriteTimeout bounds the longest run served.
func New(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) System {
	return &server{
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeoutDuration(),
			ReadHeaderTimeout: cfg.ReadTimeoutDuration(),
			WriteTimeout:      cfg.WriteTimeoutDuration(),
		},
		logger: logger.With("system", "server"),
		drain:  cfg.ShutdownTimeoutDuration(),
	}
}

func (s *server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.http.Addr
}

// Start binds the address synchronously so a taken port fails here, then
// serves in the background until the coordinator shuts down.
func (s *server) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	s.listener = ln

	go func() {
		s.logger.Info("server listening", "addr", s.Addr())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("draining connections", "timeout", s.drain)

		ctx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()

		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
			return
		}
		s.logger.Info("server stopped")
	})

	return nil
}
