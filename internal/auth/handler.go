package auth

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/decode"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/handlers"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/routes"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

const maxCredentialsBody = 64 << 10

// Handler serves login, logout, and the current user.
type Handler struct {
	sys     System
	logger  *slog.Logger
	require func(http.Handler) http.Handler
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	logger = logger.With("handler", "auth")
	return &Handler{
		sys:     sys,
		logger:  logger,
		require: Require(sys, logger),
	}
}

// Require returns the bearer-token middleware for other handlers' routes.
func (h *Handler) Require() func(http.Handler) http.Handler {
	return h.require
}

func (h *Handler) Routes() routes.Group {
	protected := []func(http.Handler) http.Handler{h.require}

	return routes.Group{
		Tags:        []string{"Auth"},
		Description: "Administrator sessions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: Spec.Login},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout, OpenAPI: Spec.Logout, Middleware: protected},
			{Method: "GET", Pattern: "/user", Handler: h.User, OpenAPI: Spec.User, Middleware: protected},
		},
		Schemas: Spec.Schemas(),
	}
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	fields, err := decode.Request(w, r, maxCredentialsBody)
	if err != nil {
		handlers.RespondError(w, h.logger, decode.Status(err), err)
		return
	}

	session, err := h.sys.Login(r.Context(), LoginCommand{
		Email:    text(fields["email"]),
		Password: text(fields["password"]),
	})
	if err != nil {
		if errs, ok := validation.As(err); ok {
			handlers.RespondValidation(w, h.logger, errs)
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, loginResponse{
		Message: MsgLoggedIn,
		Token:   session.Token,
		User:    session.User,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthenticated)
		return
	}

	if err := h.sys.Logout(r.Context(), identity.TokenID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, MsgLoggedOut)
}

func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	identity, ok := FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthenticated)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, identity.User)
}

// text renders a decoded value as the string a credential check sees.
func text(v validation.Value) string {
	if !v.Present || v.Raw == nil {
		return ""
	}
	if s, ok := v.String(); ok {
		return s
	}
	return fmt.Sprint(v.Raw)
}
