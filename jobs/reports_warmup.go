package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/parklane-pm/parklane/internal/jobs"
	"github.com/parklane-pm/parklane/internal/reports"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// ReportsWarmupJob pre-populates the report cache for active property scopes
// so the first dashboard view after an invalidation does not pay the load.
type ReportsWarmupJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(reportsSvc *reports.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportsWarmupJob {
	return &ReportsWarmupJob{
		Reports: reportsSvc,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("reports warmup: handler not configured")
	}
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Scope == "" {
		payload.Scope = "active"
	}

	tracker := j.metrics().Track(TaskReportsWarmup)
	var resultErr error
	defer func() {
		_ = tracker.End(resultErr)
	}()

	logger := j.logger().With(
		slog.String("run_id", uuid.NewString()),
		slog.String("scope", payload.Scope),
	)
	logger.Info("starting report warmup")

	scopes, err := j.Reports.WarmupScopes(ctx)
	if err != nil {
		resultErr = err
		logger.Error("load warmup scopes", slog.Any("error", err))
		return resultErr
	}
	if len(scopes) == 0 {
		logger.Info("no scopes discovered for warmup")
		return resultErr
	}

	now := j.now()
	if err := j.warmPortfolio(ctx, now); err != nil {
		resultErr = err
		logger.Error("warm portfolio reports", slog.Any("error", err))
		return resultErr
	}
	warmed := 0
	for _, scope := range scopes {
		if err := j.warmScope(ctx, scope, now); err != nil {
			resultErr = err
			logger.Error("warm scope", slog.Int64("property_id", scope.PropertyID), slog.Int64("landlord_id", scope.LandlordID), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}
	j.metrics().AddWarmedScopes(TaskReportsWarmup, warmed)

	logger.Info("completed report warmup", slog.Int("scopes", warmed), slog.Duration("duration", time.Since(now)))
	return resultErr
}

func (j *ReportsWarmupJob) warmScope(ctx context.Context, scope reports.WarmupScope, now time.Time) error {
	if j.Reports == nil {
		return nil
	}
	// Bound each scope so one slow property cannot stall the whole run.
	scopeCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	propertyID := scope.PropertyID
	landlordID := scope.LandlordID
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	asOfFilter := reports.AsOfFilter{AsOf: now, PropertyID: &propertyID}
	if landlordID > 0 {
		asOfFilter.LandlordID = &landlordID
	}
	if _, err := j.Reports.AgedAnalysis(scopeCtx, asOfFilter); err != nil {
		return err
	}
	if _, err := j.Reports.RentRoll(scopeCtx, asOfFilter); err != nil {
		return err
	}

	rangeFilter := reports.RangeFilter{From: monthStart, To: monthEnd, PropertyID: &propertyID}
	if _, err := j.Reports.CommissionByProperty(scopeCtx, rangeFilter); err != nil {
		return err
	}
	return nil
}

// warmPortfolio pre-fills the reports that are not property-scoped.
func (j *ReportsWarmupJob) warmPortfolio(ctx context.Context, now time.Time) error {
	if j.Reports == nil {
		return nil
	}
	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	filter := reports.RangeFilter{From: monthStart, To: monthStart.AddDate(0, 1, -1)}
	if _, err := j.Reports.BankToIncome(warmCtx, filter); err != nil {
		return err
	}
	if _, err := j.Reports.TrialBalance(warmCtx, filter); err != nil {
		return err
	}
	if _, err := j.Reports.IncomeStatement(warmCtx, filter); err != nil {
		return err
	}
	return nil
}

func (j *ReportsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportsWarmup))
}

func (j *ReportsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *ReportsWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
