// Package api assembles the JSON API module: domain systems, their routes,
// the OpenAPI document, and the module middleware stack.
package api

import (
	"net/http"

	"github.com/Flogerbe/HelloCSEFlorian/internal/config"
	"github.com/Flogerbe/HelloCSEFlorian/internal/infrastructure"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/middleware"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/module"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"
)

// NewModule builds the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, cfg.API.BasePath, runtime, domain)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.Recoverer())
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
