package documents

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/JaimeStill/scribe/pkg/query"
	"github.com/JaimeStill/scribe/pkg/repository"
	"github.com/docker/go-units"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	maxSize    int64
}

// New creates a documents repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, cfg Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
		maxSize:    cfg.MaxSizeBytes(),
	}
}

func (r *repo) Resolve(ctx context.Context, names []string) (string, error) {
	unique := Unique(names)
	if len(unique) == 0 {
		return "", nil
	}

	values := make([]any, len(unique))
	for i, n := range unique {
		values[i] = n
	}

	active := true
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereIn("Name", values).
		WhereEquals("Active", &active).
		BuildList()

	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return "", fmt.Errorf("resolve context documents: %w", err)
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	return strings.Join(texts, "\n"), nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Text")

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	if strings.TrimSpace(cmd.Owner) == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidDocument)
	}
	if err := Validate(cmd.Name, cmd.Text, r.maxSize); err != nil {
		return nil, err
	}

	active := true
	if cmd.Active != nil {
		active = *cmd.Active
	}

	q := `
		INSERT INTO context_documents (owner, name, text, active, user_selected)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + documentColumns

	args := []any{cmd.Owner, cmd.Name, cmd.Text, active, cmd.UserSelected}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created", "id", d.ID, "name", d.Name, "owner", d.Owner, "size", units.HumanSize(float64(len(d.Text))))
	return &d, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Document, error) {
	if err := Validate(cmd.Name, cmd.Text, r.maxSize); err != nil {
		return nil, err
	}

	q := `
		UPDATE context_documents
		SET name = $1, text = $2, user_selected = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + documentColumns

	args := []any{cmd.Name, cmd.Text, cmd.UserSelected, id}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document updated", "id", d.ID, "name", d.Name)
	return &d, nil
}

func (r *repo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Document, error) {
	q := `
		UPDATE context_documents
		SET active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + documentColumns

	d, err := repository.QueryOne(ctx, r.db, q, []any{active, id}, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document activation changed", "id", d.ID, "active", d.Active)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM context_documents WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

// Validate checks the fields shared by create and update. A maxSize of zero
// disables the size check.
func Validate(name, text string, maxSize int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDocument)
	}
	if maxSize > 0 && int64(len(text)) > maxSize {
		return fmt.Errorf("%w: %s exceeds %s",
			ErrTooLarge,
			units.HumanSize(float64(len(text))),
			units.HumanSize(float64(maxSize)),
		)
	}
	return nil
}

// Unique returns names with blanks and repeats removed, keeping first occurrence order.
func Unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
