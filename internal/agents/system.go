package agents

import (
	"context"

	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

// System defines agent storage and retrieval operations.
type System interface {
	// ListByOwner returns the owner's agents by ascending order, ties broken
	// by creation time.
	ListByOwner(ctx context.Context, owner string) ([]Agent, error)

	Create(ctx context.Context, cmd CreateCommand) (*Agent, error)

	// Save updates the owner's agent with the command's name, or creates it
	// when no agent has that name. A name held by another owner fails with
	// ErrDuplicate.
	Save(ctx context.Context, cmd CreateCommand) (*Agent, error)

	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id uuid.UUID) (*Agent, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)

	// Reorder sets each listed agent's order to its index. Each update is
	// applied independently; ids that do not belong to the owner are skipped.
	Reorder(ctx context.Context, cmd ReorderCommand) error
}
