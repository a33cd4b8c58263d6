// Package database opens the postgres connection pool, applies schema
// migrations, and ties the pool to the service lifecycle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/lifecycle"
)

// System owns the connection pool.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn       *sql.DB
	logger     *slog.Logger
	cfg        *Config
	migrations fs.FS
}

// Option customizes the System.
type Option func(*database)

// WithMigrations runs the migrations found at the root of source during
// startup when the config enables them.
func WithMigrations(source fs.FS) Option {
	return func(d *database) {
		d.migrations = source
	}
}

// New opens the pool without connecting. Connectivity is checked in Start.
func New(cfg *Config, logger *slog.Logger, opts ...Option) (System, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	d := &database{
		conn:   conn,
		logger: logger.With("system", "database"),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

// Start pings the database and applies migrations before readiness, and
// closes the pool on shutdown.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection", "host", d.cfg.Host, "name", d.cfg.Name)

	ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if d.migrations != nil && d.cfg.Migrate() {
		version, err := Migrate(d.cfg.Dsn(), d.migrations)
		if err != nil {
			return err
		}
		d.logger.Info("migrations applied", "version", version)
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
		}
	})

	d.logger.Info("database connection established")
	return nil
}
