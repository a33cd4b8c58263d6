// Package module mounts self-contained HTTP handlers under single-segment
// path prefixes and routes requests between them.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/middleware"
)

// Module is a handler mounted under a prefix such as "/api". Requests reach
// the handler with the prefix stripped.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware middleware.System
}

// New creates a module. It panics when prefix is not a single path segment
// with a leading slash.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		handler:    handler,
		middleware: middleware.New(),
	}
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends mw to the module stack. The first middleware added runs first.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the module handler wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.handler)
}

// Serve strips the prefix from the request path and dispatches it.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	req := r.Clone(r.Context())
	req.URL.Path = path
	req.URL.RawPath = ""

	m.Handler().ServeHTTP(w, req)
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix must not be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if strings.Contains(prefix[1:], "/") || len(prefix) == 1 {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}
