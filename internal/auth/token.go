package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const secretBytes = 40

// issuedToken is a freshly generated token. Plain is returned to the
// client; only Hash is stored.
type issuedToken struct {
	ID    uuid.UUID
	Plain string
	Hash  string
}

func newToken() (issuedToken, error) {
	secret := make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		return issuedToken{}, err
	}

	id := uuid.New()
	plain := id.String() + "|" + base64.RawURLEncoding.EncodeToString(secret)

	return issuedToken{
		ID:    id,
		Plain: plain,
		Hash:  hashToken(plain),
	}, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// BearerToken returns the token from an "Authorization: Bearer" header, or
// "" when there is none.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
