// Package main seeds default agents and context documents. Seeders run in a
// single transaction so a partial seed never commits.
package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed seeds/*.json
var seedFiles embed.FS

// Seeder populates one table from a JSON seed file.
type Seeder interface {
	Name() string
	Description() string

	// SetFile replaces the embedded seed data with an external file.
	SetFile(path string)

	Seed(ctx context.Context, tx *sql.Tx) error
}

// registry keeps seeders in registration order.
var registry []Seeder

func registerSeeder(s Seeder) {
	registry = append(registry, s)
}

func getSeeder(name string) (Seeder, bool) {
	for _, s := range registry {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// run executes the seeders in order inside one transaction.
func run(ctx context.Context, db *sql.DB, seeders ...Seeder) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range seeders {
		if err := s.Seed(ctx, tx); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// readSeed decodes the external file when set, otherwise the embedded default.
func readSeed[T any](file, embedded string) (T, error) {
	var data T

	var content []byte
	var err error
	if file != "" {
		content, err = os.ReadFile(file)
	} else {
		content, err = seedFiles.ReadFile(embedded)
	}
	if err != nil {
		return data, fmt.Errorf("read seed file: %w", err)
	}

	if err := json.Unmarshal(content, &data); err != nil {
		return data, fmt.Errorf("parse seed data: %w", err)
	}
	return data, nil
}
