// Package jobs runs analyses asynchronously. A submission creates a queued
// job and returns at once; the Runner executes the pipeline after a short
// delay under a concurrency limit and records the outcome on the job.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/analyses"
)

// Job statuses.
const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Failure messages recorded when a process stops with jobs outstanding.
const (
	MsgInterruptedRestart  = "interrupted by service restart"
	MsgInterruptedShutdown = "interrupted by service shutdown"
)

// Job tracks one asynchronous analysis.
type Job struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	ResultID    *uuid.UUID `json:"result_id,omitempty"`
	Error       *string    `json:"error,omitempty"`
	AdName      string     `json:"ad_name"`
	RequestedBy string     `json:"requested_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// View is the polling response for a job.
type View struct {
	Status string           `json:"status"`
	Result *analyses.Result `json:"result,omitempty"`
	Error  *string          `json:"error,omitempty"`
}

var transitions = map[string][]string{
	StatusQueued:  {StatusRunning, StatusFailed},
	StatusRunning: {StatusDone, StatusFailed},
}

// CanTransition reports whether a job may move from one status to another.
// Done and failed are terminal.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Store persists jobs. Status changes are guarded in SQL so a job only
// moves along CanTransition edges.
type Store interface {
	Create(ctx context.Context, adName, requestedBy string) (*Job, error)
	Find(ctx context.Context, id uuid.UUID) (*Job, error)
	// Start moves a queued job to running.
	Start(ctx context.Context, id uuid.UUID) error
	// Complete moves a running job to done with its result.
	Complete(ctx context.Context, id, resultID uuid.UUID) error
	// Fail moves a queued or running job to failed with msg.
	Fail(ctx context.Context, id uuid.UUID, msg string) error
	// FailStale fails every queued or running job created before the given
	// time and returns the count. Creation times come from the process clock.
	FailStale(ctx context.Context, msg string, before time.Time) (int, error)
}
