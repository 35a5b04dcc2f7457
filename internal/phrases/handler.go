package phrases

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/pkg/handlers"
	"github.com/JaimeStill/adscreen/pkg/pagination"
	"github.com/JaimeStill/adscreen/pkg/routes"
)

var errInvalidID = errors.New("invalid phrase id")

// Handler provides HTTP endpoints for forbidden phrases and the reference
// catalog they cite.
type Handler struct {
	sys        System
	catalog    *screening.Catalog
	audit      audit.Recorder
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler. Phrase changes are recorded through recorder.
func NewHandler(
	sys System,
	catalog *screening.Catalog,
	recorder audit.Recorder,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		catalog:    catalog,
		audit:      recorder,
		logger:     logger.With("handler", "phrases"),
		pagination: pagination,
	}
}

// Routes returns the phrase and reference route groups.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/phrases",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.List},
					{Method: "POST", Pattern: "", Handler: h.Create},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find},
					{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
				},
			},
			{
				Prefix: "/references",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.References},
				},
			},
		},
	}
}

// List returns a page of phrases, most recently updated first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single phrase by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	p, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Create adds a phrase.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[Command](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	audit.Log(r.Context(), h.audit, h.logger, "phrase added: "+p.Phrase, auth.Actor(r.Context()))
	handlers.RespondJSON(w, http.StatusCreated, p)
}

// Update replaces a phrase.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	cmd, err := handlers.DecodeJSON[Command](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	audit.Log(r.Context(), h.audit, h.logger, "phrase updated: "+p.Phrase, auth.Actor(r.Context()))
	handlers.RespondJSON(w, http.StatusOK, p)
}

// Delete removes a phrase.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	p, err := h.sys.Delete(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	audit.Log(r.Context(), h.audit, h.logger, "phrase deleted: "+p.Phrase, auth.Actor(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// References lists the statute catalog phrases may cite.
func (h *Handler) References(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.catalog.Entries())
}
