package storage

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

// Handler serves stored blobs read-only at GET /{key...}. It is mounted
// under a public prefix so stored image keys resolve to URLs.
func Handler(sys System, logger *slog.Logger) http.Handler {
	logger = logger.With("handler", "storage")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{key...}", func(w http.ResponseWriter, r *http.Request) {
		data, err := sys.Retrieve(r.Context(), r.PathValue("key"))
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidKey) {
				http.NotFound(w, r)
				return
			}
			logger.Error("retrieve blob failed", "key", r.PathValue("key"), "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", http.DetectContentType(data))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			w.Write(data)
		}
	})
	return mux
}
