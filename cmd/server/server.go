package main

import (
	"time"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/internal/routes"
	"github.com/JaimeStill/scribe/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	runtime *Runtime
	domain  *Domain
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	runtime, err := NewRuntime(cfg)
	if err != nil {
		return nil, err
	}

	domain := NewDomain(runtime.Lifecycle.Context(), runtime, cfg)

	r := routes.New(runtime.Logger)
	if err := registerRoutes(r, runtime, domain, cfg); err != nil {
		return nil, err
	}

	handler := buildMiddleware(runtime, cfg).Apply(r.Build())

	runtime.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
	)

	return &Server{
		runtime: runtime,
		domain:  domain,
		http:    server.New(&cfg.Server, handler, runtime.Logger),
	}, nil
}

// Start begins all subsystems and returns once the listener is running.
func (s *Server) Start() error {
	s.runtime.Logger.Info("starting service")

	if err := s.runtime.Start(); err != nil {
		return err
	}

	if err := s.domain.Start(s.runtime); err != nil {
		return err
	}

	if err := s.http.Start(s.runtime.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.runtime.Lifecycle.WaitForStartup()
		s.runtime.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Reload re-reads configuration and applies the diagnostics section. Other
// sections take effect on restart. A configuration that fails to load keeps
// the current one.
func (s *Server) Reload() {
	cfg, err := config.Load()
	if err != nil {
		s.runtime.Logger.Error("config reload failed", "error", err)
		return
	}
	s.domain.Diagnostics.Configure(cfg.Diagnostics)
}

// Shutdown gracefully stops all subsystems within the timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.runtime.Logger.Info("initiating shutdown")
	return s.runtime.Lifecycle.Shutdown(timeout)
}

