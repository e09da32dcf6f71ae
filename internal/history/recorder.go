package history

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/scribe/pkg/lifecycle"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

type recorder struct {
	store  Store
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewSystem builds the history system over an arbitrary Store.
func NewSystem(store Store, cfg Config, logger *slog.Logger) System {
	return &recorder{
		store:  store,
		cfg:    cfg,
		logger: logger.With("system", "history"),
		now:    time.Now,
	}
}

func (r *recorder) Record(ctx context.Context, cmd RecordCommand) (*Entry, error) {
	if strings.TrimSpace(cmd.Owner) == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidEntry)
	}

	entry, err := r.store.Insert(ctx, cmd)
	if err != nil {
		return nil, err
	}

	count, err := r.store.Count(ctx, cmd.Owner)
	if err != nil {
		return nil, err
	}

	if count > r.cfg.MaxEntries {
		if err := r.store.DeleteOldest(ctx, cmd.Owner); err != nil {
			return nil, err
		}
		r.logger.Debug("history pruned", "owner", cmd.Owner, "count", count, "max", r.cfg.MaxEntries)
	}

	return entry, nil
}

func (r *recorder) ListByOwner(ctx context.Context, owner string) ([]Entry, error) {
	return r.store.ListByOwner(ctx, owner)
}

func (r *recorder) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error) {
	return r.store.List(ctx, page, filters)
}

func (r *recorder) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return r.store.Find(ctx, id)
}

func (r *recorder) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, id)
}

func (r *recorder) Purge(ctx context.Context, before time.Time) (int64, error) {
	n, err := r.store.DeleteBefore(ctx, before)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.Info("history purged", "before", before, "deleted", n)
	}
	return n, nil
}

// Start runs the age sweep every SweepInterval until shutdown.
func (r *recorder) Start(lc *lifecycle.Coordinator) error {
	maxAge := r.cfg.MaxAgeDuration()
	interval := r.cfg.SweepIntervalDuration()

	if maxAge <= 0 || interval <= 0 {
		r.logger.Info("history sweep disabled")
		return nil
	}

	lc.OnShutdown(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-lc.Context().Done():
				r.logger.Info("history sweep stopped")
				return
			case <-ticker.C:
				r.sweep(lc.Context(), maxAge)
			}
		}
	})

	r.logger.Info("history sweep scheduled", "interval", interval, "max_age", maxAge)
	return nil
}

func (r *recorder) sweep(ctx context.Context, maxAge time.Duration) {
	if _, err := r.Purge(ctx, r.now().Add(-maxAge)); err != nil {
		r.logger.Error("history sweep failed", "error", err)
	}
}
