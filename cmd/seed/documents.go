package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/scribe/internal/documents"
	"github.com/docker/go-units"
)

func init() {
	registerSeeder(&DocumentSeeder{maxSize: 1 * units.MiB})
}

type DocumentSeedData struct {
	Documents []documents.CreateCommand `json:"documents"`
}

// DocumentSeeder saves context documents keyed by owner and name.
type DocumentSeeder struct {
	file    string
	maxSize int64
}

func (s *DocumentSeeder) Name() string { return "documents" }

func (s *DocumentSeeder) Description() string {
	return "Seeds context documents resolved into agent prompts"
}

func (s *DocumentSeeder) SetFile(path string) { s.file = path }

func (s *DocumentSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := readSeed[DocumentSeedData](s.file, "seeds/documents.json")
	if err != nil {
		return err
	}

	for _, d := range data.Documents {
		if err := documents.Validate(d.Name, d.Text, s.maxSize); err != nil {
			return fmt.Errorf("document %s: %w", d.Name, err)
		}
		if d.Owner == "" {
			return fmt.Errorf("document %s: owner is required", d.Name)
		}

		active := true
		if d.Active != nil {
			active = *d.Active
		}

		if err := s.save(ctx, tx, d, active); err != nil {
			return fmt.Errorf("save document %s/%s: %w", d.Owner, d.Name, err)
		}
	}

	return nil
}

func (s *DocumentSeeder) save(ctx context.Context, tx *sql.Tx, d documents.CreateCommand, active bool) error {
	const update = `
		UPDATE context_documents
		SET text = $3, active = $4, user_selected = $5, updated_at = NOW()
		WHERE owner = $1 AND name = $2`

	res, err := tx.ExecContext(ctx, update, d.Owner, d.Name, d.Text, active, d.UserSelected)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}

	const insert = `
		INSERT INTO context_documents (owner, name, text, active, user_selected)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = tx.ExecContext(ctx, insert, d.Owner, d.Name, d.Text, active, d.UserSelected)
	return err
}
