package profiles

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/decode"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/handlers"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/routes"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

// Handler serves the public listing and the protected management routes.
type Handler struct {
	sys           System
	logger        *slog.Logger
	require       func(http.Handler) http.Handler
	maxUploadSize int64
}

// NewHandler creates a profile handler. require guards every route except
// the public listing.
func NewHandler(sys System, logger *slog.Logger, require func(http.Handler) http.Handler, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "profiles"),
		require:       require,
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) Routes() routes.Group {
	protected := []func(http.Handler) http.Handler{h.require}

	return routes.Group{
		Tags:        []string{"Profiles"},
		Description: "Public profiles and their administration",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/profiles", Handler: h.ListPublic, OpenAPI: Spec.ListPublic},
			{Method: "POST", Pattern: "/profiles", Handler: h.Create, OpenAPI: Spec.Create, Middleware: protected},
			{Method: "PUT", Pattern: "/profiles/{id}", Handler: h.Update, OpenAPI: Spec.Update, Middleware: protected},
			{Method: "DELETE", Pattern: "/profiles/{id}", Handler: h.Delete, OpenAPI: Spec.Delete, Middleware: protected},
		},
		Children: []routes.Group{
			{
				Prefix: "/admin",
				Tags:   []string{"Admin"},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/profiles", Handler: h.ListAdmin, OpenAPI: Spec.ListAdmin, Middleware: protected},
				},
			},
		},
		Schemas: Spec.Schemas(),
	}
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

type profileResponse struct {
	Message string   `json:"message"`
	Data    *Profile `json:"data"`
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	ps, err := h.sys.ListActive(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, listResponse[PublicProfile]{Data: PublicList(ps)})
}

func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	ps, err := h.sys.ListAll(r.Context(), FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, listResponse[Profile]{Data: ps})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decode.Request(w, r, h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, decode.Status(err), err)
		return
	}

	p, err := h.sys.Create(r.Context(), CreateCommand{
		Nom:    fields["nom"],
		Prenom: fields["prenom"],
		Statut: fields["statut"],
		Image:  toUpload(fields["image"]),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, profileResponse{Message: MsgCreated, Data: p})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	fields, err := decode.Request(w, r, h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, decode.Status(err), err)
		return
	}

	p, err := h.sys.Update(r.Context(), id, UpdateCommand{
		Nom:    fields["nom"],
		Prenom: fields["prenom"],
		Statut: fields["statut"],
		Image:  toUpload(fields["image"]),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profileResponse{Message: MsgUpdated, Data: p})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, MsgDeleted)
}

// parseID answers 404 for ids that cannot name a profile.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errs, ok := validation.As(err); ok {
		handlers.RespondValidation(w, h.logger, errs)
		return
	}
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

func toUpload(v validation.Value) validation.Value {
	if f, ok := v.Raw.(*decode.File); ok {
		return validation.Of(&Upload{
			Filename: f.Filename,
			Size:     f.Size,
			Data:     f.Data,
		})
	}
	return v
}
