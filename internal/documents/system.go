package documents

import (
	"context"

	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

// System manages context documents.
type System interface {
	// Resolve concatenates the text of every active document whose name is
	// in names, newline separated, in creation order. Unknown or inactive
	// names contribute nothing.
	Resolve(ctx context.Context, names []string) (string, error)

	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Document, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)
}
