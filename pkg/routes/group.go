// Package routes declares handler route tables that register on a ServeMux
// and describe themselves in an OpenAPI document.
package routes

import (
	"net/http"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"
)

// Route binds a handler to a method and a pattern relative to its group.
// Middleware wraps only this route, first entry outermost.
type Route struct {
	Method     string
	Pattern    string
	Handler    http.HandlerFunc
	OpenAPI    *openapi.Operation
	Middleware []func(http.Handler) http.Handler
}

// Group is a set of routes under a common prefix. Children inherit the
// prefix; routes without explicit tags inherit the group tags.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec documents the group and its children under basePath.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g *Group) addToSpec(parentPrefix string, spec *openapi.Spec) {
	prefix := parentPrefix + g.Prefix

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		spec.AddOperation(prefix+route.Pattern, route.Method, &op)
	}

	for _, child := range g.Children {
		child.addToSpec(prefix, spec)
	}
}

func (r Route) handler() http.Handler {
	var h http.Handler = r.Handler
	for i := len(r.Middleware) - 1; i >= 0; i-- {
		h = r.Middleware[i](h)
	}
	return h
}
