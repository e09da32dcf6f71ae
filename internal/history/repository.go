package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/JaimeStill/scribe/pkg/query"
	"github.com/JaimeStill/scribe/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the history system backed by PostgreSQL.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, cfg Config) System {
	store := NewStore(db, logger, pagination)
	return NewSystem(store, cfg, logger)
}

// NewStore creates a PostgreSQL Store.
func NewStore(db *sql.DB, logger *slog.Logger, pagination pagination.Config) Store {
	return &repo{
		db:         db,
		logger:     logger.With("system", "history-store"),
		pagination: pagination,
	}
}

func (r *repo) Insert(ctx context.Context, cmd RecordCommand) (*Entry, error) {
	q := `
		INSERT INTO history (owner, input_text, output_text, model, agent_id, degraded, attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + entryColumns

	args := []any{cmd.Owner, cmd.InputText, cmd.OutputText, cmd.Model, cmd.AgentID, cmd.Degraded, cmd.Attempts}

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("insert history entry: %w", err)
	}
	return &e, nil
}

func (r *repo) Count(ctx context.Context, owner string) (int, error) {
	q, args := query.NewBuilder(projection).WhereEquals("Owner", owner).BuildCount()

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history for %s: %w", owner, err)
	}
	return n, nil
}

func (r *repo) DeleteOldest(ctx context.Context, owner string) error {
	q := `
		DELETE FROM history
		WHERE id = (
			SELECT id FROM history
			WHERE owner = $1
			ORDER BY created_at ASC, seq ASC
			LIMIT 1
		)`

	if _, err := r.db.ExecContext(ctx, q, owner); err != nil {
		return fmt.Errorf("delete oldest history for %s: %w", owner, err)
	}
	return nil
}

func (r *repo) ListByOwner(ctx context.Context, owner string) ([]Entry, error) {
	q, args := query.
		NewBuilder(projection, oldestFirst...).
		WhereEquals("Owner", owner).
		BuildList()

	entries, err := repository.QueryMany(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query history for %s: %w", owner, err)
	}
	return entries, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, newestFirst...).
		WhereSearch(page.Search, "InputText", "OutputText")

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidEntry)
	}
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM history WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrInvalidEntry)
	}

	r.logger.Info("history entry deleted", "id", id)
	return nil
}

func (r *repo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM history WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete history before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return res.RowsAffected()
}
