package docs_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/scribe/internal/routes"
	"github.com/JaimeStill/scribe/web/docs"
)

func TestRoutes_ServesIndex(t *testing.T) {
	sys := routes.New(slog.Default())
	sys.RegisterGroup(docs.Routes())

	rec := httptest.NewRecorder()
	sys.Build().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "/api/openapi.json") {
		t.Error("index does not reference the OpenAPI document")
	}
}
