package settings

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/pkg/handlers"
	"github.com/JaimeStill/adscreen/pkg/routes"
)

// Handler provides HTTP endpoints for system settings.
type Handler struct {
	sys    System
	audit  audit.Recorder
	logger *slog.Logger
}

// NewHandler creates a Handler. Saves are recorded through recorder.
func NewHandler(sys System, recorder audit.Recorder, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		audit:  recorder,
		logger: logger.With("handler", "settings"),
	}
}

// Routes returns the route group for settings endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/settings",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Get},
			{Method: "PUT", Pattern: "", Handler: h.Update},
		},
	}
}

// Get returns the current settings.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.sys.Get(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

// Update applies an UpdateCommand and records the saved values.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[UpdateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.Update(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	audit.Log(r.Context(), h.audit, h.logger, savedAction(s), auth.Actor(r.Context()))
	handlers.RespondJSON(w, http.StatusOK, s)
}

func savedAction(s *Settings) string {
	state := "off"
	if s.AuditLog {
		state = "on"
	}
	return fmt.Sprintf("settings saved (audit log: %s, retention: %s)", state, s.Retention)
}
