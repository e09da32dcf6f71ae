package main

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/pkg/database"
	"github.com/JaimeStill/scribe/pkg/lifecycle"
	"github.com/JaimeStill/scribe/pkg/logging"
	"github.com/JaimeStill/scribe/pkg/pagination"
)

// Runtime holds the infrastructure shared by every domain system.
type Runtime struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Pagination pagination.Config
}

func NewRuntime(cfg *config.Config) (*Runtime, error) {
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Runtime{
		Lifecycle:  lifecycle.New(),
		Logger:     logger,
		Database:   db,
		Pagination: cfg.API.Pagination,
	}, nil
}

func (r *Runtime) Start() error {
	if err := r.Database.Start(r.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
