package routes

import (
	"net/http"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"
)

// Register mounts every route of groups on mux and documents them in spec.
// Patterns on mux are relative to the module; spec paths carry basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		group.AddToSpec(basePath, spec)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix

	for _, route := range group.Routes {
		mux.Handle(route.Method+" "+prefix+route.Pattern, route.handler())
	}

	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
