package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// Worker pushes sync jobs to the Gateway in the background.
type Worker struct {
	gateway *Gateway
	jobs    chan *entity.SyncJob
	timeout time.Duration
}

// WorkerConfig holds configuration for the sync worker.
type WorkerConfig struct {
	QueueSize int
	Timeout   time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		QueueSize: 64,
		Timeout:   10 * time.Second,
	}
}

// NewWorker creates a new sync worker.
func NewWorker(gateway *Gateway, config WorkerConfig) *Worker {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultWorkerConfig().Timeout
	}
	return &Worker{
		gateway: gateway,
		jobs:    make(chan *entity.SyncJob, config.QueueSize),
		timeout: config.Timeout,
	}
}

// Enqueue schedules job without blocking. It returns false when the queue is full.
func (w *Worker) Enqueue(job *entity.SyncJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		slog.Warn("Sync queue full, dropping job", "job_id", job.ID, "action", job.Action)
		return false
	}
}

// Start begins the worker loop. It blocks until the context is cancelled,
// then pushes whatever is still queued before returning.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Sync worker started",
		"queue_size", cap(w.jobs),
		"timeout", w.timeout,
	)

	for {
		select {
		case <-ctx.Done():
			w.ProcessNow(context.Background())
			slog.Info("Sync worker shutting down")
			return
		case job := <-w.jobs:
			w.processJob(ctx, job)
		}
	}
}

func (w *Worker) processJob(ctx context.Context, job *entity.SyncJob) {
	logger := slog.With(
		"job_id", job.ID,
		"action", job.Action,
	)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()

	if err := w.gateway.Push(ctx, job); err != nil {
		logger.Warn("Remote persist failed, payload kept in fallback cache", "error", err)
		return
	}

	logger.Debug("Sync job pushed",
		"records", len(job.Records),
		"statuses", len(job.Statuses),
		"queued_for", time.Since(job.CreatedAt),
	)
}

// Pending returns the number of queued jobs.
func (w *Worker) Pending() int {
	return len(w.jobs)
}

// ProcessNow pushes every queued job immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	for {
		select {
		case job := <-w.jobs:
			w.processJob(ctx, job)
		default:
			return
		}
	}
}
