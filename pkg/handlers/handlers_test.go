package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/scribe/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondJSON(w, http.StatusCreated, map[string]any{"responses": []string{"a"}})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), `"responses":["a"]`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRespondError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	w := httptest.NewRecorder()

	handlers.RespondError(w, logger, http.StatusConflict, errors.New("agent name already exists"))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "agent name already exists" {
		t.Errorf("error = %q", body["error"])
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "request failed") {
		t.Errorf("client error should be logged at warn: %s", buf.String())
	}

	buf.Reset()
	handlers.RespondError(httptest.NewRecorder(), logger, http.StatusInternalServerError, errors.New("db down"))
	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Errorf("server error should be logged at error: %s", buf.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Owner string `json:"owner"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"owner":"u1"}`))
	got, err := handlers.DecodeJSON[payload](req)
	if err != nil {
		t.Fatal(err)
	}
	if got.Owner != "u1" {
		t.Errorf("Owner = %q", got.Owner)
	}

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	if _, err := handlers.DecodeJSON[payload](bad); err == nil {
		t.Error("malformed body should fail")
	}

	trailing := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"owner":"u1"}{"owner":"u2"}`))
	if _, err := handlers.DecodeJSON[payload](trailing); err == nil {
		t.Error("trailing JSON value should fail")
	}
}
