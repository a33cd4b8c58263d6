package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/handlers"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/logging"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"message": "ok"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"message":"ok"}` {
		t.Errorf("body = %s", got)
	}
}

func TestRespondMessage(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.RespondMessage(w, http.StatusOK, "Déconnexion réussie.")

	var body handlers.Message
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Déconnexion réussie." {
		t.Errorf("message = %q", body.Message)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"client error", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			handlers.RespondError(w, logging.Discard(), tt.status, errors.New("profile not found"))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != "profile not found" {
				t.Errorf("error = %q", body["error"])
			}
		})
	}
}

func TestRespondValidation(t *testing.T) {
	errs := validation.Errors{}
	errs.Add("nom", "Le nom est obligatoire.")

	w := httptest.NewRecorder()
	handlers.RespondValidation(w, logging.Discard(), errs)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	var body struct {
		Error  string              `json:"error"`
		Errors map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors["nom"]) != 1 || body.Errors["nom"][0] != "Le nom est obligatoire." {
		t.Errorf("errors = %v", body.Errors)
	}
}
