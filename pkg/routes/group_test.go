package routes_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/scribe/pkg/routes"
)

func TestGroup_Walk(t *testing.T) {
	g := routes.Group{
		Prefix: "/api/diagnostics",
		Tags:   []string{"Diagnostics"},
		Routes: []routes.Route{{Method: "POST", Pattern: ""}},
		Children: []routes.Group{
			{
				Prefix: "/runs",
				Routes: []routes.Route{
					{Method: "GET", Pattern: ""},
					{Method: "GET", Pattern: "/{id}"},
				},
			},
			{
				Prefix: "/admin",
				Tags:   []string{"Admin"},
				Routes: []routes.Route{{Method: "DELETE", Pattern: "/{id}"}},
			},
		},
	}

	type visit struct {
		method, path, tag string
	}
	var got []visit
	g.Walk(func(path string, tags []string, r routes.Route) {
		got = append(got, visit{r.Method, path, tags[0]})
	})

	want := []visit{
		{"POST", "/api/diagnostics", "Diagnostics"},
		{"GET", "/api/diagnostics/runs", "Diagnostics"},
		{"GET", "/api/diagnostics/runs/{id}", "Diagnostics"},
		{"DELETE", "/api/diagnostics/admin/{id}", "Admin"},
	}

	if !slices.Equal(got, want) {
		t.Errorf("Walk visited %v, want %v", got, want)
	}
}
