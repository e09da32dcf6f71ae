package routes_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/scribe/internal/routes"
	pkgroutes "github.com/JaimeStill/scribe/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestBuild_GroupsAndChildren(t *testing.T) {
	sys := routes.New(slog.Default())

	sys.RegisterRoute(pkgroutes.Route{Method: "GET", Pattern: "/healthz", Handler: respond("ok")})
	sys.RegisterGroup(pkgroutes.Group{
		Prefix: "/api/diagnostics",
		Routes: []pkgroutes.Route{
			{Method: "POST", Pattern: "", Handler: respond("diagnose")},
		},
		Children: []pkgroutes.Group{
			{
				Prefix: "/runs",
				Routes: []pkgroutes.Route{
					{Method: "GET", Pattern: "/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
						w.Write([]byte("run " + r.PathValue("id")))
					}},
				},
			},
		},
	})

	handler := sys.Build()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/healthz", "ok"},
		{"POST", "/api/diagnostics", "diagnose"},
		{"GET", "/api/diagnostics/runs/42", "run 42"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.want)
			}
		})
	}

	if len(sys.Groups()) != 1 || len(sys.Routes()) != 1 {
		t.Errorf("Groups()/Routes() = %d/%d, want 1/1", len(sys.Groups()), len(sys.Routes()))
	}
}

func TestBuild_DuplicateKeepsFirst(t *testing.T) {
	sys := routes.New(slog.Default())

	sys.RegisterRoute(pkgroutes.Route{Method: "GET", Pattern: "/api/history", Handler: respond("first")})
	sys.RegisterGroup(pkgroutes.Group{
		Prefix: "/api/history",
		Routes: []pkgroutes.Route{{Method: "GET", Pattern: "", Handler: respond("second")}},
	})

	w := httptest.NewRecorder()
	sys.Build().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if w.Body.String() != "first" {
		t.Errorf("body = %q, want first", w.Body.String())
	}
}
