// Package middleware provides composable HTTP middleware and a stack to apply it.
package middleware

import "net/http"

// System collects middleware and wraps handlers with them.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	middlewares []func(http.Handler) http.Handler
}

// New creates an empty middleware stack.
func New() System {
	return &stack{}
}

// Use appends middleware. The first registered middleware is the outermost.
func (s *stack) Use(mw func(http.Handler) http.Handler) {
	s.middlewares = append(s.middlewares, mw)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		handler = s.middlewares[i](handler)
	}
	return handler
}
