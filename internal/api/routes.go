package api

import (
	"net/http"

	"github.com/Flogerbe/HelloCSEFlorian/internal/auth"
	"github.com/Flogerbe/HelloCSEFlorian/internal/profiles"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, basePath string, runtime *Runtime, domain *Domain) {
	authHandler := auth.NewHandler(domain.Auth, runtime.Logger)
	profilesHandler := profiles.NewHandler(
		domain.Profiles,
		runtime.Logger,
		authHandler.Require(),
		runtime.MaxUploadBytes,
	)

	routes.Register(
		mux,
		basePath,
		spec,
		authHandler.Routes(),
		profilesHandler.Routes(),
	)
}
