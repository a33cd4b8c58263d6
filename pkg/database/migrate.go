package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies every pending up migration in source and returns the
// resulting schema version. It uses a dedicated connection that is closed
// before returning, since the migration driver closes the pool it is given.
func Migrate(dsn string, source fs.FS) (uint, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return 0, fmt.Errorf("open migration connection: %w", err)
	}

	src, err := iofs.New(source, ".")
	if err != nil {
		conn.Close()
		return 0, fmt.Errorf("open migrations: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(conn, &pgxmigrate.Config{})
	if err != nil {
		conn.Close()
		return 0, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		conn.Close()
		return 0, fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	return version, nil
}
