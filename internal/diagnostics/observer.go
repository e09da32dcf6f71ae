package diagnostics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/observability"
	"github.com/JaimeStill/scribe/pkg/decode"
	"github.com/google/uuid"
)

// stageObserver writes node lifecycle events of one run to diagnostic_stages.
// Writes outlive the run's context so a timed-out run still leaves a trail.
type stageObserver struct {
	db         *sql.DB
	runID      uuid.UUID
	logger     *slog.Logger
	mu         sync.Mutex
	startTimes map[string]time.Time
}

func newStageObserver(db *sql.DB, runID uuid.UUID, logger *slog.Logger) *stageObserver {
	return &stageObserver{
		db:         db,
		runID:      runID,
		logger:     logger.With("run_id", runID),
		startTimes: make(map[string]time.Time),
	}
}

func (o *stageObserver) OnEvent(ctx context.Context, event observability.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ctx = context.WithoutCancel(ctx)

	switch event.Type {
	case observability.EventNodeStart:
		o.nodeStart(ctx, event)
	case observability.EventNodeComplete:
		o.nodeComplete(ctx, event)
	case observability.EventEdgeTransition:
		o.edgeTransition(event)
	default:
		o.logger.Debug("unhandled event", "type", event.Type, "source", event.Source)
	}
}

func (o *stageObserver) nodeStart(ctx context.Context, event observability.Event) {
	data, err := decode.FromMap[nodeEvent](event.Data)
	if err != nil {
		o.logger.Error("failed to decode node start data", "error", err)
		return
	}

	o.startTimes[stageKey(data)] = event.Timestamp

	const q = `
		INSERT INTO diagnostic_stages (run_id, node, iteration, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := o.db.ExecContext(ctx, q, o.runID, data.Node, data.Iteration, StageStarted, event.Timestamp); err != nil {
		o.logger.Error("failed to insert stage", "error", err, "node", data.Node)
	}
}

func (o *stageObserver) nodeComplete(ctx context.Context, event observability.Event) {
	data, err := decode.FromMap[nodeEvent](event.Data)
	if err != nil {
		o.logger.Error("failed to decode node complete data", "error", err)
		return
	}

	status := StageCompleted
	var message *string
	if data.Error {
		status = StageFailed
		if data.ErrorMessage != "" {
			message = &data.ErrorMessage
		}
	}

	key := stageKey(data)
	var durationMs *int
	if start, ok := o.startTimes[key]; ok {
		d := int(event.Timestamp.Sub(start).Milliseconds())
		durationMs = &d
		delete(o.startTimes, key)
	}

	const q = `
		UPDATE diagnostic_stages
		SET status = $1, duration_ms = $2, error = $3
		WHERE run_id = $4 AND node = $5 AND iteration = $6`

	if _, err := o.db.ExecContext(ctx, q, status, durationMs, message, o.runID, data.Node, data.Iteration); err != nil {
		o.logger.Error("failed to update stage", "error", err, "node", data.Node)
	}
}

func (o *stageObserver) edgeTransition(event observability.Event) {
	data, err := decode.FromMap[edgeEvent](event.Data)
	if err != nil {
		o.logger.Error("failed to decode edge transition data", "error", err)
		return
	}
	o.logger.Debug("edge transition", "from", data.From, "to", data.To)
}

func stageKey(e nodeEvent) string {
	return fmt.Sprintf("%s:%d", e.Node, e.Iteration)
}
