package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Flogerbe/HelloCSEFlorian/internal/auth"
)

// UserSeeder creates the default administrator unless the email exists.
type UserSeeder struct {
	admin auth.CreateUserCommand
	cost  int
}

func NewUserSeeder(admin auth.CreateUserCommand, cost int) *UserSeeder {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	return &UserSeeder{admin: admin, cost: cost}
}

func (s *UserSeeder) Name() string {
	return "users"
}

func (s *UserSeeder) Description() string {
	return "Creates the default administrator account"
}

func (s *UserSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, s.admin.Email,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check user %s: %w", s.admin.Email, err)
	}
	if exists {
		return nil
	}

	if _, err := auth.InsertUser(ctx, tx, s.admin, s.cost); err != nil {
		return fmt.Errorf("create user %s: %w", s.admin.Email, err)
	}
	return nil
}
