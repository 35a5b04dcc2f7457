package pipeline

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/pkg/handlers"
	"github.com/JaimeStill/adscreen/pkg/routes"
)

// Handler provides the synchronous analysis endpoint.
type Handler struct {
	sys      System
	recorder audit.Recorder
	logger   *slog.Logger
	maxSize  int64
}

// NewHandler creates a Handler. Decoded images above maxSize are rejected.
func NewHandler(sys System, recorder audit.Recorder, logger *slog.Logger, maxSize int64) *Handler {
	return &Handler{
		sys:      sys,
		recorder: recorder,
		logger:   logger.With("handler", "pipeline"),
		maxSize:  maxSize,
	}
}

// Routes returns the route group for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analyze",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Analyze},
		},
	}
}

// Analyze runs the pipeline within the request and returns the stored result.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	sub, err := DecodeSubmission(w, r, h.maxSize)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	actor := auth.Actor(r.Context())
	audit.Log(r.Context(), h.recorder, h.logger, fmt.Sprintf("analysis requested: %s", sub.AdName), actor)

	result, err := h.sys.Analyze(r.Context(), *sub, actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
