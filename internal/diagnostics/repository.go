package diagnostics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents-orchestration/pkg/observability"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/JaimeStill/scribe/pkg/query"
	"github.com/JaimeStill/scribe/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db          *sql.DB
	logger      *slog.Logger
	pagination  pagination.Config
	checkpoints *checkpointStore
}

// NewTracker creates a Tracker that keeps runs, stages, and checkpoints in PostgreSQL.
func NewTracker(db *sql.DB, logger *slog.Logger, pagination pagination.Config) Tracker {
	logger = logger.With("system", "diagnostic-runs")
	return &repo{
		db:          db,
		logger:      logger,
		pagination:  pagination,
		checkpoints: newCheckpointStore(db, logger),
	}
}

func (r *repo) Begin(ctx context.Context, owner string, agentCount int) (uuid.UUID, error) {
	id := uuid.New()

	const q = `
		INSERT INTO diagnostic_runs (id, owner, status, agent_count)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, q, id, owner, StatusRunning, agentCount); err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

func (r *repo) Complete(ctx context.Context, runID uuid.UUID, status RunStatus, runErr error) error {
	var message *string
	if runErr != nil {
		m := runErr.Error()
		message = &m
	}

	const q = `
		UPDATE diagnostic_runs
		SET status = $1, error = $2, completed_at = NOW()
		WHERE id = $3`

	if err := repository.ExecExpectOne(ctx, r.db, q, status, message, runID); err != nil {
		return mapRunError(err)
	}
	return nil
}

func (r *repo) Observer(runID uuid.UUID) observability.Observer {
	return newStageObserver(r.db, runID, r.logger)
}

func (r *repo) Checkpoints() state.CheckpointStore {
	return r.checkpoints
}

func (r *repo) ListRuns(ctx context.Context, page pagination.PageRequest, filters RunFilters) (*pagination.PageResult[Run], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(runProjection, runDefaultSort)
	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanRun)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return result, nil
}

func (r *repo) FindRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	q, args := query.NewBuilder(runProjection).BuildSingle("ID", id)

	run, err := repository.QueryOne(ctx, r.db, q, args, scanRun)
	if err != nil {
		return nil, mapRunError(err)
	}
	return &run, nil
}

func (r *repo) Stages(ctx context.Context, runID uuid.UUID) ([]Stage, error) {
	if _, err := r.FindRun(ctx, runID); err != nil {
		return nil, err
	}

	q, args := query.
		NewBuilder(stageProjection, stageDefaultSort).
		WhereEquals("RunID", runID).
		BuildList()

	stages, err := repository.QueryMany(ctx, r.db, q, args, scanStage)
	if err != nil {
		return nil, fmt.Errorf("query stages: %w", err)
	}
	return stages, nil
}

func mapRunError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRunNotFound
	}
	return err
}
