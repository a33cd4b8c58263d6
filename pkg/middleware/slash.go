package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash strips one trailing slash from the path before routing, so
// "/profiles/" and "/profiles" reach the same handler. "/" is left alone.
func TrimSlash() Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
				r.URL.Path = strings.TrimSuffix(r.URL.Path, "/")
				if r.URL.RawPath != "" {
					r.URL.RawPath = strings.TrimSuffix(r.URL.RawPath, "/")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
