package auth

import (
	"github.com/Flogerbe/HelloCSEFlorian/pkg/query"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/repository"
)

var credentialsProjection = query.NewProjectionMap("public", "users", "u").
	Project("id", "Id").
	Project("name", "Name").
	Project("email", "Email").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Project("password_hash", "PasswordHash")

const identityQuery = `SELECT t.id, u.id, u.name, u.email, u.created_at, u.updated_at
	FROM tokens t
	JOIN users u ON u.id = t.user_id
	WHERE t.token_hash = $1`

type credentials struct {
	User         User
	PasswordHash string
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func scanCredentials(s repository.Scanner) (credentials, error) {
	var c credentials
	err := s.Scan(
		&c.User.ID,
		&c.User.Name,
		&c.User.Email,
		&c.User.CreatedAt,
		&c.User.UpdatedAt,
		&c.PasswordHash,
	)
	return c, err
}

func scanIdentity(s repository.Scanner) (Identity, error) {
	var i Identity
	err := s.Scan(
		&i.TokenID,
		&i.User.ID,
		&i.User.Name,
		&i.User.Email,
		&i.User.CreatedAt,
		&i.User.UpdatedAt,
	)
	return i, err
}
