package diagnostics

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/JaimeStill/scribe/pkg/repository"
)

// checkpointStore persists graph state in diagnostic_checkpoints, one row per run.
type checkpointStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func newCheckpointStore(db *sql.DB, logger *slog.Logger) *checkpointStore {
	return &checkpointStore{
		db:     db,
		logger: logger.With("system", "diagnostic-checkpoints"),
	}
}

func (s *checkpointStore) Save(st state.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	const q = `
		INSERT INTO diagnostic_checkpoints (run_id, state_data, checkpoint_node, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (run_id) DO UPDATE SET
			state_data = EXCLUDED.state_data,
			checkpoint_node = EXCLUDED.checkpoint_node,
			updated_at = NOW()`

	if _, err := s.db.ExecContext(context.Background(), q, st.RunID, string(data), st.CheckpointNode); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}

	s.logger.Debug("checkpoint saved", "run_id", st.RunID, "node", st.CheckpointNode)
	return nil
}

func (s *checkpointStore) Load(runID string) (state.State, error) {
	var data []byte
	err := s.db.QueryRowContext(context.Background(),
		"SELECT state_data FROM diagnostic_checkpoints WHERE run_id = $1", runID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return state.State{}, fmt.Errorf("checkpoint not found: %s", runID)
		}
		return state.State{}, fmt.Errorf("query checkpoint: %w", err)
	}

	var st state.State
	if err := json.Unmarshal(data, &st); err != nil {
		return state.State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return st, nil
}

func (s *checkpointStore) Delete(runID string) error {
	if _, err := s.db.ExecContext(context.Background(), "DELETE FROM diagnostic_checkpoints WHERE run_id = $1", runID); err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	return nil
}

func (s *checkpointStore) List() ([]string, error) {
	ids, err := repository.QueryMany(context.Background(), s.db,
		"SELECT run_id FROM diagnostic_checkpoints ORDER BY created_at DESC", nil,
		func(sc repository.Scanner) (string, error) {
			var id string
			err := sc.Scan(&id)
			return id, err
		})
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	return ids, nil
}
