package history_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/scribe/internal/history"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

type memStore struct {
	mu      sync.Mutex
	entries []history.Entry
	clock   time.Time
	deletes int
	failOn  string
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memStore) Insert(_ context.Context, cmd history.RecordCommand) (*history.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failOn == "insert" {
		return nil, errors.New("insert failed")
	}

	m.clock = m.clock.Add(time.Second)
	e := history.Entry{
		ID:         uuid.New(),
		Owner:      cmd.Owner,
		InputText:  cmd.InputText,
		OutputText: cmd.OutputText,
		Model:      cmd.Model,
		AgentID:    cmd.AgentID,
		Degraded:   cmd.Degraded,
		Attempts:   cmd.Attempts,
		CreatedAt:  m.clock,
	}
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *memStore) Count(_ context.Context, owner string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failOn == "count" {
		return 0, errors.New("count failed")
	}

	n := 0
	for _, e := range m.entries {
		if e.Owner == owner {
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteOldest(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes++
	for i, e := range m.entries {
		if e.Owner == owner {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) ListByOwner(_ context.Context, owner string) ([]history.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]history.Entry, 0)
	for _, e := range m.entries {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) List(_ context.Context, page pagination.PageRequest, _ history.Filters) (*pagination.PageResult[history.Entry], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := pagination.NewPageResult(m.entries, len(m.entries), 1, len(m.entries)+1)
	return &result, nil
}

func (m *memStore) Find(_ context.Context, id uuid.UUID) (*history.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, history.ErrNotFound
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return history.ErrNotFound
}

func (m *memStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	var n int64
	for _, e := range m.entries {
		if e.CreatedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return n, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRecorder(store history.Store) history.System {
	cfg := history.Config{}
	if err := cfg.Finalize(nil); err != nil {
		panic(err)
	}
	return history.NewSystem(store, cfg, discard())
}

func TestRecord_RetainsMostRecent(t *testing.T) {
	store := newMemStore()
	sys := newRecorder(store)
	ctx := context.Background()

	for i := range 35 {
		_, err := sys.Record(ctx, history.RecordCommand{
			Owner:     "alice",
			InputText: fmt.Sprintf("prompt %d", i),
			Model:     "gpt-4o-mini",
		})
		if err != nil {
			t.Fatalf("Record(%d): %v", i, err)
		}
	}

	entries, err := sys.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}

	if len(entries) != 30 {
		t.Fatalf("len(entries) = %d, want 30", len(entries))
	}
	if entries[0].InputText != "prompt 5" {
		t.Errorf("oldest retained = %q, want %q", entries[0].InputText, "prompt 5")
	}
	if entries[29].InputText != "prompt 34" {
		t.Errorf("newest retained = %q, want %q", entries[29].InputText, "prompt 34")
	}
}

func TestRecord_PrunesOncePerCall(t *testing.T) {
	store := newMemStore()
	sys := newRecorder(store)
	ctx := context.Background()

	for i := range 30 {
		if _, err := sys.Record(ctx, history.RecordCommand{Owner: "bob", InputText: fmt.Sprint(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if store.deletes != 0 {
		t.Fatalf("deletes = %d before reaching the cap, want 0", store.deletes)
	}

	if _, err := sys.Record(ctx, history.RecordCommand{Owner: "bob", InputText: "31st"}); err != nil {
		t.Fatal(err)
	}
	if store.deletes != 1 {
		t.Errorf("deletes = %d, want 1", store.deletes)
	}
}

func TestRecord_OtherOwnersUntouched(t *testing.T) {
	store := newMemStore()
	sys := newRecorder(store)
	ctx := context.Background()

	for i := range 3 {
		if _, err := sys.Record(ctx, history.RecordCommand{Owner: "carol", InputText: fmt.Sprint(i)}); err != nil {
			t.Fatal(err)
		}
	}
	for i := range 40 {
		if _, err := sys.Record(ctx, history.RecordCommand{Owner: "dave", InputText: fmt.Sprint(i)}); err != nil {
			t.Fatal(err)
		}
	}

	carol, _ := sys.ListByOwner(ctx, "carol")
	dave, _ := sys.ListByOwner(ctx, "dave")

	if len(carol) != 3 {
		t.Errorf("carol entries = %d, want 3", len(carol))
	}
	if len(dave) != 30 {
		t.Errorf("dave entries = %d, want 30", len(dave))
	}
}

func TestRecord_RequiresOwner(t *testing.T) {
	sys := newRecorder(newMemStore())

	_, err := sys.Record(context.Background(), history.RecordCommand{InputText: "x"})
	if !errors.Is(err, history.ErrInvalidEntry) {
		t.Errorf("Record() error = %v, want ErrInvalidEntry", err)
	}
}

func TestRecord_PropagatesStoreErrors(t *testing.T) {
	for _, stage := range []string{"insert", "count"} {
		t.Run(stage, func(t *testing.T) {
			store := newMemStore()
			store.failOn = stage
			sys := newRecorder(store)

			if _, err := sys.Record(context.Background(), history.RecordCommand{Owner: "erin"}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPurge(t *testing.T) {
	store := newMemStore()
	sys := newRecorder(store)
	ctx := context.Background()

	for i := range 5 {
		if _, err := sys.Record(ctx, history.RecordCommand{Owner: "frank", InputText: fmt.Sprint(i)}); err != nil {
			t.Fatal(err)
		}
	}

	cutoff := time.Date(2024, 1, 1, 0, 0, 3, 0, time.UTC)
	n, err := sys.Purge(ctx, cutoff)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 2 {
		t.Errorf("purged = %d, want 2", n)
	}

	remaining, _ := sys.ListByOwner(ctx, "frank")
	if len(remaining) != 3 {
		t.Errorf("remaining = %d, want 3", len(remaining))
	}
}
