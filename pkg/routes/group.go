// Package routes describes HTTP routes declaratively so the same description
// drives both the mux and the OpenAPI document.
package routes

import (
	"net/http"

	"github.com/JaimeStill/scribe/pkg/openapi"
)

// Route is one method and pattern. OpenAPI is optional; routes without it
// are served but left out of the document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group shares a prefix and tags across its routes and children.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Walk calls fn for every route in g and its children with the full path
// and the nearest tags.
func (g Group) Walk(fn func(path string, tags []string, r Route)) {
	g.walk("", nil, fn)
}

func (g Group) walk(parent string, inherited []string, fn func(string, []string, Route)) {
	prefix := parent + g.Prefix
	tags := g.Tags
	if len(tags) == 0 {
		tags = inherited
	}

	for _, r := range g.Routes {
		fn(prefix+r.Pattern, tags, r)
	}
	for _, child := range g.Children {
		child.walk(prefix, tags, fn)
	}
}

// System collects groups and standalone routes and builds the handler.
type System interface {
	RegisterGroup(group Group)
	RegisterRoute(route Route)
	Build() http.Handler
	Groups() []Group
	Routes() []Route
}
