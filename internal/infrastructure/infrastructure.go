// Package infrastructure assembles the systems every domain module depends
// on: lifecycle coordination, logging, the database pool, and blob storage.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/Flogerbe/HelloCSEFlorian/internal/config"
	"github.com/Flogerbe/HelloCSEFlorian/internal/migrations"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/database"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/lifecycle"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/logging"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// Nothing connects until Start.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger, database.WithMigrations(migrations.FS))
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start connects the database, applies migrations, and prepares storage.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
