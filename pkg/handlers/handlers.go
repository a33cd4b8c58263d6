// Package handlers provides JSON response helpers shared by every HTTP handler.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

// Message is the body of responses that only carry a confirmation.
type Message struct {
	Message string `json:"message"`
}

// RespondJSON writes data as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondMessage writes {"message": msg}.
func RespondMessage(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, Message{Message: msg})
}

// RespondError writes {"error": "<message>"}. Server errors are logged at
// error level; client errors at debug.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Debug("request rejected", "error", err, "status", status)
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// RespondValidation writes a 422 with the per-field error map.
func RespondValidation(w http.ResponseWriter, logger *slog.Logger, errs validation.Errors) {
	logger.Debug("validation failed", "fields", errs.Fields())
	RespondJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation failed",
		"errors": errs,
	})
}
