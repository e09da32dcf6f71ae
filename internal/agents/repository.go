package agents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

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

// New creates an agents repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "agents"),
		pagination: pagination,
	}
}

func (r *repo) ListByOwner(ctx context.Context, owner string) ([]Agent, error) {
	q, args := query.
		NewBuilder(projection, ownerOrder...).
		WhereEquals("Owner", owner).
		BuildList()

	agents, err := repository.QueryMany(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents for %s: %w", owner, err)
	}
	return agents, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Prompt")

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Agent, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Agent, error) {
	f, err := cmd.validate()
	if err != nil {
		return nil, err
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		return insert(ctx, tx, cmd.Owner, f)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent created", "id", a.ID, "name", a.Name, "owner", a.Owner, "order", a.Order)
	return &a, nil
}

func (r *repo) Save(ctx context.Context, cmd CreateCommand) (*Agent, error) {
	f, err := cmd.validate()
	if err != nil {
		return nil, err
	}

	created := false
	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		var (
			id    uuid.UUID
			owner string
		)

		err := tx.QueryRowContext(ctx,
			"SELECT id, owner FROM agents WHERE name = $1 FOR UPDATE",
			f.name,
		).Scan(&id, &owner)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			created = true
			return insert(ctx, tx, cmd.Owner, f)
		case err != nil:
			return Agent{}, err
		case owner != cmd.Owner:
			return Agent{}, ErrDuplicate
		}

		return update(ctx, tx, id, f)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent saved", "id", a.ID, "name", a.Name, "owner", a.Owner, "created", created)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error) {
	f, err := cmd.validate()
	if err != nil {
		return nil, err
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		return update(ctx, tx, id, f)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent updated", "id", a.ID, "name", a.Name)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM agents WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("agent deleted", "id", id)
	return nil
}

func (r *repo) Reorder(ctx context.Context, cmd ReorderCommand) error {
	if strings.TrimSpace(cmd.Owner) == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalidAgent)
	}

	const q = `
		UPDATE agents
		SET position = $1, updated_at = NOW()
		WHERE id = $2 AND owner = $3`

	applied := 0
	for i, id := range cmd.IDs {
		res, err := r.db.ExecContext(ctx, q, i, id, cmd.Owner)
		if err != nil {
			return fmt.Errorf("reorder agent %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			applied++
		} else {
			r.logger.Debug("reorder skipped unknown agent", "id", id, "owner", cmd.Owner)
		}
	}

	r.logger.Info("agents reordered", "owner", cmd.Owner, "requested", len(cmd.IDs), "applied", applied)
	return nil
}

func insert(ctx context.Context, tx *sql.Tx, owner string, f fields) (Agent, error) {
	docs, connected, err := encodeFields(f)
	if err != nil {
		return Agent{}, err
	}

	q := `
		INSERT INTO agents (owner, name, prompt, model, temperature, context_docs,
			connected_agents, include_transcript, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM agents WHERE owner = $1))
		RETURNING ` + agentColumns

	args := []any{owner, f.name, f.prompt, string(f.model), f.temperature, docs, connected, f.includeTranscript}
	return repository.QueryOne(ctx, tx, q, args, scanAgent)
}

func update(ctx context.Context, tx *sql.Tx, id uuid.UUID, f fields) (Agent, error) {
	docs, connected, err := encodeFields(f)
	if err != nil {
		return Agent{}, err
	}

	q := `
		UPDATE agents
		SET name = $1, prompt = $2, model = $3, temperature = $4, context_docs = $5,
			connected_agents = $6, include_transcript = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + agentColumns

	args := []any{f.name, f.prompt, string(f.model), f.temperature, docs, connected, f.includeTranscript, id}
	return repository.QueryOne(ctx, tx, q, args, scanAgent)
}

func encodeFields(f fields) (docs, connected string, err error) {
	d, err := encodeNames(f.contextDocs)
	if err != nil {
		return "", "", fmt.Errorf("encode context_docs: %w", err)
	}
	c, err := encodeNames(f.connectedAgents)
	if err != nil {
		return "", "", fmt.Errorf("encode connected_agents: %w", err)
	}
	return string(d), string(c), nil
}
