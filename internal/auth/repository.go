package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/query"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/repository"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

// Config tunes password hashing and token labels.
type Config struct {
	BcryptCost int
	TokenName  string
}

type repo struct {
	db        *sql.DB
	logger    *slog.Logger
	cfg       Config
	dummyHash func() string
}

// New creates the auth system over db.
func New(db *sql.DB, logger *slog.Logger, cfg Config) System {
	r := &repo{
		db:     db,
		logger: logger.With("system", "auth"),
		cfg:    cfg,
	}
	r.dummyHash = sync.OnceValue(func() string {
		hash, err := HashPassword("not-a-real-password", cfg.BcryptCost)
		if err != nil {
			r.logger.Error("dummy hash generation failed", "error", err)
		}
		return hash
	})
	return r
}

func (r *repo) Login(ctx context.Context, cmd LoginCommand) (*Session, error) {
	if err := loginRules.Check(map[string]validation.Value{
		"email":    present(cmd.Email),
		"password": present(cmd.Password),
	}).Err(); err != nil {
		return nil, err
	}

	q, args := query.
		NewBuilder(credentialsProjection).
		WhereEquals("Email", normalizeEmail(cmd.Email)).
		Build()

	creds, err := repository.QueryOne(ctx, r.db, q, args, scanCredentials)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		checkPassword(r.dummyHash(), cmd.Password)
		r.logger.Debug("login rejected", "reason", "unknown email")
		return nil, invalidCredentials()
	}

	ok, err := checkPassword(creds.PasswordHash, cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		r.logger.Debug("login rejected", "reason", "wrong password", "user_id", creds.User.ID)
		return nil, invalidCredentials()
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	q = `INSERT INTO tokens(id, user_id, name, token_hash) VALUES ($1, $2, $3, $4)`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, token.ID, creds.User.ID, r.cfg.TokenName, token.Hash)
	})
	if err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	r.logger.Info("token issued", "user_id", creds.User.ID, "token_id", token.ID)
	return &Session{Token: token.Plain, User: creds.User}, nil
}

func (r *repo) Authenticate(ctx context.Context, plain string) (*Identity, error) {
	if plain == "" {
		return nil, ErrUnauthenticated
	}

	identity, err := repository.QueryOne(ctx, r.db, identityQuery, []any{hashToken(plain)}, scanIdentity)
	if err != nil {
		return nil, repository.MapError(err, ErrUnauthenticated, ErrDuplicate)
	}

	q := `UPDATE tokens SET last_used_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, identity.TokenID); err != nil {
		r.logger.Warn("token usage update failed", "token_id", identity.TokenID, "error", err)
	}

	return &identity, nil
}

func (r *repo) Logout(ctx context.Context, tokenID uuid.UUID) error {
	q := `DELETE FROM tokens WHERE id = $1`
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, tokenID)
	})
	if err != nil {
		return repository.MapError(err, ErrUnauthenticated, ErrDuplicate)
	}

	r.logger.Info("token revoked", "token_id", tokenID)
	return nil
}

func (r *repo) CreateUser(ctx context.Context, cmd CreateUserCommand) (*User, error) {
	user, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return InsertUser(ctx, tx, cmd, r.cfg.BcryptCost)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("user created", "id", user.ID, "email", user.Email)
	return &user, nil
}

// InsertUser validates cmd and inserts the user through q, so callers that
// already hold a transaction can create users inside it.
func InsertUser(ctx context.Context, q repository.Querier, cmd CreateUserCommand, cost int) (User, error) {
	if err := userRules.Check(map[string]validation.Value{
		"name":     present(cmd.Name),
		"email":    present(cmd.Email),
		"password": present(cmd.Password),
	}).Err(); err != nil {
		return User{}, err
	}

	hash, err := HashPassword(cmd.Password, cost)
	if err != nil {
		return User{}, err
	}

	stmt := `INSERT INTO users(id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, created_at, updated_at`

	user, err := repository.QueryOne(ctx, q, stmt, []any{
		uuid.New(), strings.TrimSpace(cmd.Name), normalizeEmail(cmd.Email), hash,
	}, scanUser)
	if err != nil {
		return User{}, repository.MapError(err, ErrUserNotFound, ErrDuplicate)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// present treats blank strings as absent so Required rejects them.
func present(s string) validation.Value {
	if strings.TrimSpace(s) == "" {
		return validation.Value{}
	}
	return validation.Of(strings.TrimSpace(s))
}
