package profiles

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("profile not found")
	ErrDuplicate = errors.New("profile already exists")
)

// MapHTTPStatus converts profile errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
