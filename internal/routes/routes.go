// Package routes builds an http.ServeMux from registered route groups.
package routes

import (
	"log/slog"
	"net/http"

	pkgroutes "github.com/JaimeStill/scribe/pkg/routes"
)

type registry struct {
	standalone []pkgroutes.Route
	groups     []pkgroutes.Group
	logger     *slog.Logger
}

// New returns an empty route system.
func New(logger *slog.Logger) pkgroutes.System {
	return &registry{logger: logger.With("system", "routes")}
}

func (r *registry) Groups() []pkgroutes.Group { return r.groups }

func (r *registry) Routes() []pkgroutes.Route { return r.standalone }

func (r *registry) RegisterRoute(route pkgroutes.Route) {
	r.standalone = append(r.standalone, route)
}

func (r *registry) RegisterGroup(group pkgroutes.Group) {
	r.groups = append(r.groups, group)
}

// Build registers every standalone route and group route on a new ServeMux
// using "METHOD /path" patterns. A pattern registered twice keeps its first
// handler; the duplicate is logged and skipped.
func (r *registry) Build() http.Handler {
	mux := http.NewServeMux()
	seen := make(map[string]bool)

	handle := func(method, path string, h http.HandlerFunc) {
		pattern := method + " " + path
		if seen[pattern] {
			r.logger.Warn("duplicate route skipped", "pattern", pattern)
			return
		}
		seen[pattern] = true
		r.logger.Debug("route registered", "pattern", pattern)
		mux.HandleFunc(pattern, h)
	}

	for _, route := range r.standalone {
		handle(route.Method, route.Pattern, route.Handler)
	}
	for _, group := range r.groups {
		group.Walk(func(path string, _ []string, route pkgroutes.Route) {
			handle(route.Method, path, route.Handler)
		})
	}

	return mux
}
