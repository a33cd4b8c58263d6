// Package middleware provides the HTTP middleware stack shared by modules:
// request ids, panic recovery, request logging, CORS, and slash trimming.
package middleware

import "net/http"

// Func wraps a handler.
type Func func(http.Handler) http.Handler

// System is an ordered middleware stack. The first middleware added is the
// outermost.
type System interface {
	Use(mw Func)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	middlewares []Func
}

// New creates an empty stack.
func New() System {
	return &stack{}
}

func (s *stack) Use(mw Func) {
	s.middlewares = append(s.middlewares, mw)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		handler = s.middlewares[i](handler)
	}
	return handler
}
