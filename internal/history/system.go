package history

import (
	"context"
	"time"

	"github.com/JaimeStill/scribe/pkg/lifecycle"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

// Store is the persistence contract the recorder is built on.
type Store interface {
	Insert(ctx context.Context, cmd RecordCommand) (*Entry, error)
	Count(ctx context.Context, owner string) (int, error)
	DeleteOldest(ctx context.Context, owner string) error
	ListByOwner(ctx context.Context, owner string) ([]Entry, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error)
	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// System records invocations and exposes the history log.
type System interface {
	// Record inserts an entry, then removes the owner's single oldest entry
	// if the owner now exceeds the retention cap.
	Record(ctx context.Context, cmd RecordCommand) (*Entry, error)
	ListByOwner(ctx context.Context, owner string) ([]Entry, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error)
	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, before time.Time) (int64, error)
	Start(lc *lifecycle.Coordinator) error
}
