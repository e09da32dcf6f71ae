package diagnostics

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/observability"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

// Tracker records the lifecycle of diagnostic runs and supplies the
// observer and checkpoint store used while a run's graph executes.
type Tracker interface {
	Begin(ctx context.Context, owner string, agentCount int) (uuid.UUID, error)
	Complete(ctx context.Context, runID uuid.UUID, status RunStatus, runErr error) error

	Observer(runID uuid.UUID) observability.Observer
	Checkpoints() state.CheckpointStore

	ListRuns(ctx context.Context, page pagination.PageRequest, filters RunFilters) (*pagination.PageResult[Run], error)
	FindRun(ctx context.Context, id uuid.UUID) (*Run, error)
	Stages(ctx context.Context, runID uuid.UUID) ([]Stage, error)
}

// NoopTracker returns a Tracker that keeps nothing. Runs still receive
// identifiers; lookups report ErrRunNotFound.
func NoopTracker() Tracker {
	return noopTracker{}
}

type noopTracker struct{}

func (noopTracker) Begin(context.Context, string, int) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (noopTracker) Complete(context.Context, uuid.UUID, RunStatus, error) error {
	return nil
}

func (noopTracker) Observer(uuid.UUID) observability.Observer {
	return noopObserver{}
}

func (noopTracker) Checkpoints() state.CheckpointStore {
	return discardCheckpoints{}
}

func (noopTracker) ListRuns(_ context.Context, page pagination.PageRequest, _ RunFilters) (*pagination.PageResult[Run], error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = 1
	}
	result := pagination.NewPageResult[Run](nil, 0, page.Page, page.PageSize)
	return &result, nil
}

func (noopTracker) FindRun(context.Context, uuid.UUID) (*Run, error) {
	return nil, ErrRunNotFound
}

func (noopTracker) Stages(context.Context, uuid.UUID) ([]Stage, error) {
	return nil, ErrRunNotFound
}

type noopObserver struct{}

func (noopObserver) OnEvent(context.Context, observability.Event) {}

type discardCheckpoints struct{}

func (discardCheckpoints) Save(state.State) error { return nil }

func (discardCheckpoints) Load(runID string) (state.State, error) {
	return state.State{}, fmt.Errorf("checkpoint not found: %s", runID)
}

func (discardCheckpoints) Delete(string) error { return nil }

func (discardCheckpoints) List() ([]string, error) { return nil, nil }
