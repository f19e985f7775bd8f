package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/parklane-pm/parklane/internal/reports"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportsWarmup pre-fills the report cache for active scopes.
	TaskReportsWarmup = "reports:warmup"
	// TaskCacheBump invalidates every cached report payload.
	TaskCacheBump = "reports:cache_bump"
)

// ReportsWarmupPayload selects which scopes the warmup run covers.
type ReportsWarmupPayload struct {
	Scope string `json:"scope"`
}

// NewReportsWarmupTask constructs a report warmup task.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}

// CacheBumpPayload records why the report cache was invalidated.
type CacheBumpPayload struct {
	Reason string `json:"reason"`
}

// NewCacheBumpTask constructs a cache bump task.
func NewCacheBumpTask(payload CacheBumpPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCacheBump, data), nil
}

// NewCacheBumpHandler returns the handler that processes TaskCacheBump tasks.
// Bumping the shared cache version publishes an invalidation event that API
// instances subscribe to.
func NewCacheBumpHandler(svc *reports.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload CacheBumpPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if err := svc.Bump(ctx); err != nil {
			if logger != nil {
				logger.Error("cache bump", slog.Any("error", err))
			}
			return err
		}
		if logger != nil {
			logger.Info("report cache bumped", slog.String("reason", payload.Reason))
		}
		return nil
	}
}
