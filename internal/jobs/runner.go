package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/JaimeStill/adscreen/internal/analyses"
	"github.com/JaimeStill/adscreen/internal/audit"
	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/pipeline"
	"github.com/JaimeStill/adscreen/internal/telemetry"
	"github.com/JaimeStill/adscreen/pkg/lifecycle"
)

// Analyzer runs the analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, sub pipeline.Submission, requestedBy string) (*analyses.Result, error)
}

// ResultReader loads stored results for completed jobs.
type ResultReader interface {
	Find(ctx context.Context, id uuid.UUID) (*analyses.Result, error)
}

// Deps are the collaborators of the Runner.
type Deps struct {
	Store        Store
	Analyzer     Analyzer
	Results      ResultReader
	Config       *config.JobsConfig
	Metrics      *telemetry.Metrics
	Recorder     audit.Recorder
	Logger       *slog.Logger
	MaxImageSize int64
}

// System accepts analysis jobs and reports their progress.
type System interface {
	Handler() *Handler
	// Start registers the stale job sweep and the shutdown drain.
	Start(lc *lifecycle.Coordinator) error
	// Submit queues sub and schedules its execution.
	Submit(ctx context.Context, sub pipeline.Submission, requestedBy string) (*Job, error)
	// View returns a job's status, with the result once it is done.
	View(ctx context.Context, id uuid.UUID) (*View, error)
}

// Runner executes queued jobs on goroutines. Each job waits for the
// configured delay, then runs once a concurrency slot is free.
type Runner struct {
	deps    Deps
	delay   time.Duration
	sem     *semaphore.Weighted
	started time.Time
	stop    context.Context
	base    context.Context
	logger  *slog.Logger

	mu       sync.Mutex
	draining bool
	wg       sync.WaitGroup
}

// New creates a Runner. Until Start is called, jobs run on a background
// context and are never interrupted. Jobs created before New are the ones
// the startup sweep treats as left over from a previous process.
func New(deps Deps) *Runner {
	return &Runner{
		deps:    deps,
		delay:   deps.Config.DelayDuration(),
		sem:     semaphore.NewWeighted(int64(deps.Config.MaxConcurrent)),
		started: time.Now().UTC(),
		stop:    context.Background(),
		base:    context.Background(),
		logger:  deps.Logger.With("system", "jobs"),
	}
}

func (r *Runner) Handler() *Handler {
	return NewHandler(r, r.deps.Recorder, r.logger, r.deps.MaxImageSize)
}

func (r *Runner) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting job runner", "delay", r.delay, "max_concurrent", r.deps.Config.MaxConcurrent)

	r.stop = lc.Context()
	r.base = context.WithoutCancel(lc.Context())

	lc.OnStartup(func() {
		n, err := r.deps.Store.FailStale(r.base, MsgInterruptedRestart, r.started)
		if err != nil {
			r.logger.Error("stale job sweep failed", "error", err)
			return
		}
		if n > 0 {
			r.logger.Warn("failed stale jobs", "count", n)
		}
	})

	lc.OnDrain(func() {
		r.mu.Lock()
		r.draining = true
		r.mu.Unlock()

		r.logger.Info("draining jobs")
		r.Wait()
		r.logger.Info("job runner stopped")
	})

	return nil
}

func (r *Runner) Submit(ctx context.Context, sub pipeline.Submission, requestedBy string) (*Job, error) {
	r.mu.Lock()
	if r.draining {
		r.mu.Unlock()
		return nil, ErrShuttingDown
	}
	r.wg.Add(1)
	r.mu.Unlock()

	job, err := r.deps.Store.Create(ctx, sub.AdName, requestedBy)
	if err != nil {
		r.wg.Done()
		return nil, err
	}

	r.deps.Metrics.JobsSubmitted.Inc()

	go r.execute(job.ID, sub, requestedBy)

	return job, nil
}

func (r *Runner) View(ctx context.Context, id uuid.UUID) (*View, error) {
	job, err := r.deps.Store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &View{Status: job.Status, Error: job.Error}
	if job.Status == StatusDone && job.ResultID != nil {
		result, err := r.deps.Results.Find(ctx, *job.ResultID)
		if err != nil {
			return nil, fmt.Errorf("load result for job %s: %w", id, err)
		}
		view.Result = result
	}

	return view, nil
}

// Wait blocks until every submitted job has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) execute(id uuid.UUID, sub pipeline.Submission, requestedBy string) {
	defer r.wg.Done()
	ctx := r.base

	timer := time.NewTimer(r.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-r.stop.Done():
		r.fail(ctx, id, MsgInterruptedShutdown)
		return
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		r.fail(ctx, id, err.Error())
		return
	}
	defer r.sem.Release(1)

	if err := r.deps.Store.Start(ctx, id); err != nil {
		r.logger.Error("job start failed", "id", id, "error", err)
		if !errors.Is(err, ErrInvalidTransition) {
			r.fail(ctx, id, err.Error())
		}
		return
	}

	r.deps.Metrics.JobsRunning.Inc()
	defer r.deps.Metrics.JobsRunning.Dec()

	result, err := r.deps.Analyzer.Analyze(ctx, sub, requestedBy)
	if err != nil {
		r.fail(ctx, id, pipeline.Message(err))
		return
	}

	if err := r.deps.Store.Complete(ctx, id, result.ID); err != nil {
		r.logger.Error("job completion failed", "id", id, "result_id", result.ID, "error", err)
		if !errors.Is(err, ErrInvalidTransition) {
			r.fail(ctx, id, err.Error())
		}
		return
	}

	r.deps.Metrics.JobsFinished.WithLabelValues(StatusDone).Inc()
	r.logger.Info("job done", "id", id, "result_id", result.ID)
}

func (r *Runner) fail(ctx context.Context, id uuid.UUID, msg string) {
	if err := r.deps.Store.Fail(ctx, id, msg); err != nil {
		r.logger.Error("job failure not recorded", "id", id, "error", err)
		return
	}

	r.deps.Metrics.JobsFinished.WithLabelValues(StatusFailed).Inc()
	r.logger.Warn("job failed", "id", id, "error", msg)
}
