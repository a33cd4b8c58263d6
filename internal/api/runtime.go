package api

import (
	"github.com/Flogerbe/HelloCSEFlorian/internal/config"
	"github.com/Flogerbe/HelloCSEFlorian/internal/infrastructure"
)

// Runtime extends Infrastructure with API-scoped settings.
type Runtime struct {
	*infrastructure.Infrastructure
	Auth           config.AuthConfig
	MaxImageBytes  int64
	MaxUploadBytes int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Auth:           cfg.Auth,
		MaxImageBytes:  cfg.Profiles.ImageMaxSizeBytes(),
		MaxUploadBytes: cfg.Storage.MaxUploadSizeBytes(),
	}
}
