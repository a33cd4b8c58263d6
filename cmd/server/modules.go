package main

import (
	"net/http"

	"github.com/Flogerbe/HelloCSEFlorian/internal/api"
	"github.com/Flogerbe/HelloCSEFlorian/internal/config"
	"github.com/Flogerbe/HelloCSEFlorian/internal/infrastructure"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/middleware"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/module"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/storage"
)

const storagePrefix = "/storage"

type Modules struct {
	API     *module.Module
	Storage *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	storageModule := module.New(storagePrefix, storage.Handler(infra.Storage, infra.Logger))
	storageModule.Use(middleware.CORS(&cfg.API.CORS))
	storageModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:     apiModule,
		Storage: storageModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Storage)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
