package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		slog.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range signals {
		if sig == syscall.SIGHUP {
			srv.Reload()
			continue
		}
		break
	}

	if err := srv.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
