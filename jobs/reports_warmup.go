package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/erp-dashboard/internal/analytics"
	jobmetrics "github.com/odyssey-erp/erp-dashboard/internal/jobs"
)

// ReportLoader loads reports through the cache.
type ReportLoader interface {
	Report(ctx context.Context, kind analytics.Kind) (any, error)
	Metrics(ctx context.Context) (analytics.DashboardMetrics, error)
}

// ReportsWarmupJob pre-populates report caches after a version bump.
type ReportsWarmupJob struct {
	Reports ReportLoader
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(reports ReportLoader, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportsWarmupJob {
	return &ReportsWarmupJob{Reports: reports, Logger: logger, Metrics: metrics}
}

// Handle processes report warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Reports == nil {
		return errors.New("reports warmup: handler not configured")
	}
	var payload ReportsWarmupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	kinds, err := warmupKinds(payload.Reports)
	if err != nil {
		j.logger().Warn("reports warmup payload rejected", slog.Any("error", err))
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	tracker := j.metrics().Track(TaskReportsWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	start := time.Now()
	for _, kind := range kinds {
		// Bound each report so one slow query cannot hold the worker.
		reportCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		_, err := j.Reports.Report(reportCtx, kind)
		cancel()
		if err != nil {
			j.logger().Error("warm report", slog.String("report", string(kind)), slog.Any("error", err))
			return err
		}
	}
	if _, err := j.Reports.Metrics(ctx); err != nil {
		j.logger().Error("warm dashboard metrics", slog.Any("error", err))
		return err
	}
	j.logger().Info("completed reports warmup", slog.Int("reports", len(kinds)), slog.Duration("duration", time.Since(start)))
	return nil
}

func warmupKinds(names []string) ([]analytics.Kind, error) {
	if len(names) == 0 {
		return []analytics.Kind{analytics.KindProducts, analytics.KindCosts, analytics.KindCustomers}, nil
	}
	out := make([]analytics.Kind, 0, len(names))
	for _, name := range names {
		kind, ok := analytics.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown report %q", name)
		}
		out = append(out, kind)
	}
	return out, nil
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
