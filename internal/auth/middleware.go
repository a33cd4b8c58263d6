package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/handlers"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by Require.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

// Require rejects requests without a valid bearer token with 401 and
// stores the resolved identity in the request context.
func Require(sys System, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}

			identity, err := sys.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
					return
				}
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
