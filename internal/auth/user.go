package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is an administrator account. The password hash never leaves the
// package.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the authenticated caller: the user and the token presented.
type Identity struct {
	User    User
	TokenID uuid.UUID
}

// Session is the result of a successful login. Token is the only time the
// plain token is available.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginCommand carries raw credentials as decoded from the request.
type LoginCommand struct {
	Email    string
	Password string
}

// CreateUserCommand creates an administrator.
type CreateUserCommand struct {
	Name     string
	Email    string
	Password string
}
