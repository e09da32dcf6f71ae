// Package database opens and manages the PostgreSQL connection pool.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/scribe/pkg/lifecycle"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// System owns the connection pool and ties it to the service lifecycle.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn   *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens the pool using the pgx stdlib driver. The connection is not verified until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

// Start pings the database during startup and closes the pool on shutdown.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := d.conn.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err, "host", d.cfg.Host)
			return
		}
		d.logger.Info("database connected", "host", d.cfg.Host, "name", d.cfg.Name)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}
