// Package docs serves the interactive API reference for the OpenAPI document.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/JaimeStill/scribe/pkg/routes"
)

//go:embed index.html
var indexHTML []byte

// Routes returns the route group for the documentation page.
func Routes() routes.Group {
	return routes.Group{
		Prefix:      "/docs",
		Tags:        []string{"Documentation"},
		Description: "Interactive API reference",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: serveIndex},
		},
	}
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}
