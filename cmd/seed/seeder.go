// Package main provides the seed command for populating the database with
// the default administrator and sample profiles. Seeders run individually
// or together within a single transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
)

// Seeder populates one domain's data.
type Seeder interface {
	Name() string
	Description() string

	// Seed runs inside tx. Seeders must be safe to run repeatedly.
	Seed(ctx context.Context, tx *sql.Tx) error
}

// registry keeps seeders in registration order; users come before the
// records that might reference them.
type registry struct {
	order   []string
	seeders map[string]Seeder
}

func newRegistry(seeders ...Seeder) *registry {
	r := &registry{seeders: make(map[string]Seeder)}
	for _, s := range seeders {
		r.order = append(r.order, s.Name())
		r.seeders[s.Name()] = s
	}
	return r
}

func (r *registry) get(name string) (Seeder, bool) {
	s, ok := r.seeders[name]
	return s, ok
}

func (r *registry) list() []Seeder {
	out := make([]Seeder, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.seeders[name])
	}
	return out
}

// run executes the named seeders, or all of them when names is empty,
// in a single transaction.
func (r *registry) run(ctx context.Context, db *sql.DB, names ...string) error {
	if len(names) == 0 {
		names = r.order
	}

	selected := make([]Seeder, 0, len(names))
	for _, name := range names {
		s, ok := r.get(name)
		if !ok {
			return fmt.Errorf("seeder not found: %s", name)
		}
		selected = append(selected, s)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, s := range selected {
		if err := s.Seed(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
