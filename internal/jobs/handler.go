package jobs

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/internal/pipeline"
	"github.com/JaimeStill/adscreen/pkg/handlers"
	"github.com/JaimeStill/adscreen/pkg/routes"
)

var errInvalidID = errors.New("invalid job id")

// Handler provides HTTP endpoints for asynchronous analysis jobs.
type Handler struct {
	sys      System
	recorder audit.Recorder
	logger   *slog.Logger
	maxSize  int64
}

// SubmitResponse carries the id of a queued job.
type SubmitResponse struct {
	JobID uuid.UUID `json:"job_id"`
}

// NewHandler creates a Handler. Decoded images above maxSize are rejected.
func NewHandler(sys System, recorder audit.Recorder, logger *slog.Logger, maxSize int64) *Handler {
	return &Handler{
		sys:      sys,
		recorder: recorder,
		logger:   logger.With("handler", "jobs"),
		maxSize:  maxSize,
	}
}

// SubmitRoutes returns the job submission endpoint.
func (h *Handler) SubmitRoutes() routes.Group {
	return routes.Group{
		Prefix: "/jobs",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Submit},
		},
	}
}

// Routes returns the job polling endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/jobs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.View},
		},
	}
}

// Submit validates the submission and queues a job.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sub, err := pipeline.DecodeSubmission(w, r, h.maxSize)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	actor := auth.Actor(r.Context())
	job, err := h.sys.Submit(r.Context(), *sub, actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	audit.Log(r.Context(), h.recorder, h.logger, fmt.Sprintf("analysis requested: %s", sub.AdName), actor)
	handlers.RespondJSON(w, http.StatusAccepted, SubmitResponse{JobID: job.ID})
}

// View returns the job status and, once done, its result.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	view, err := h.sys.View(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}
