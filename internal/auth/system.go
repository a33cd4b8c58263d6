// Package auth authenticates administrators and manages the opaque bearer
// tokens that authorize the protected API routes.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// System defines the administrator session operations.
type System interface {
	// Login checks credentials and issues a new token. Bad credentials return
	// validation.Errors on the email field.
	Login(ctx context.Context, cmd LoginCommand) (*Session, error)
	// Authenticate resolves a plain token to its identity.
	Authenticate(ctx context.Context, plain string) (*Identity, error)
	// Logout revokes one token. Other tokens of the same user stay valid.
	Logout(ctx context.Context, tokenID uuid.UUID) error
	CreateUser(ctx context.Context, cmd CreateUserCommand) (*User, error)
}
