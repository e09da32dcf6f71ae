package agents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/scribe/internal/agents"
	"github.com/JaimeStill/scribe/internal/routes"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

type fakeSystem struct {
	agents.System
	reordered *agents.ReorderCommand
	saved     *agents.CreateCommand
	saveErr   error
	byOwner   map[string][]agents.Agent
}

func (f *fakeSystem) ListByOwner(_ context.Context, owner string) ([]agents.Agent, error) {
	list := f.byOwner[owner]
	if list == nil {
		list = []agents.Agent{}
	}
	return list, nil
}

func (f *fakeSystem) Save(_ context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
	f.saved = &cmd
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &agents.Agent{ID: uuid.New(), Owner: cmd.Owner, Name: cmd.Name}, nil
}

func (f *fakeSystem) Reorder(_ context.Context, cmd agents.ReorderCommand) error {
	f.reordered = &cmd
	return nil
}

func (f *fakeSystem) Find(_ context.Context, id uuid.UUID) (*agents.Agent, error) {
	return nil, agents.ErrNotFound
}

func newServer(sys agents.System) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := agents.NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})

	r := routes.New(logger)
	r.RegisterGroup(h.Routes())
	return r.Build()
}

func TestHandler_ListByOwner(t *testing.T) {
	sys := &fakeSystem{byOwner: map[string][]agents.Agent{
		"alice": {{Name: "first", Order: 0}, {Name: "second", Order: 1}},
	}}
	srv := newServer(sys)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/agents/owner/alice", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []agents.Agent
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "first" {
		t.Errorf("agents = %+v", got)
	}
}

func TestHandler_Reorder(t *testing.T) {
	sys := &fakeSystem{}
	srv := newServer(sys)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	body, _ := json.Marshal(map[string]any{"owner": "alice", "ids": ids})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/agents/reorder", bytes.NewReader(body)))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if sys.reordered == nil || len(sys.reordered.IDs) != 2 || sys.reordered.IDs[1] != ids[1] {
		t.Errorf("reordered = %+v", sys.reordered)
	}
}

func TestHandler_SaveConflict(t *testing.T) {
	sys := &fakeSystem{saveErr: agents.ErrDuplicate}
	srv := newServer(sys)

	body := `{"owner":"bob","name":"taken","prompt":"p"}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/agents/save", bytes.NewBufferString(body)))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if sys.saved == nil || sys.saved.Name != "taken" {
		t.Errorf("saved = %+v", sys.saved)
	}
}

func TestHandler_BadRequests(t *testing.T) {
	srv := newServer(&fakeSystem{})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed id", http.MethodGet, "/api/agents/nope", "", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/agents/" + uuid.NewString(), "", http.StatusNotFound},
		{"malformed save body", http.MethodPut, "/api/agents/save", "{", http.StatusBadRequest},
		{"malformed reorder ids", http.MethodPost, "/api/agents/reorder", `{"owner":"a","ids":["x"]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body)))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{agents.ErrNotFound, http.StatusNotFound},
		{agents.ErrDuplicate, http.StatusConflict},
		{agents.ErrInvalidAgent, http.StatusBadRequest},
		{io.EOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := agents.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
