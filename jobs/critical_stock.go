package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/erp-dashboard/internal/analytics"
	jobmetrics "github.com/odyssey-erp/erp-dashboard/internal/jobs"
	"github.com/odyssey-erp/erp-dashboard/internal/masterdata/products"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// StockSource lists products whose stock is at or below the critical level.
type StockSource interface {
	CriticalStock(ctx context.Context) ([]products.Product, error)
}

// DashboardWarmer loads the dashboard counters, populating the cache.
type DashboardWarmer interface {
	Metrics(ctx context.Context) (analytics.DashboardMetrics, error)
}

// CriticalStockJob logs products that need restocking.
type CriticalStockJob struct {
	Stock   StockSource
	Warmer  DashboardWarmer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewCriticalStockJob wires dependencies for the scan handler.
func NewCriticalStockJob(stock StockSource, warmer DashboardWarmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *CriticalStockJob {
	return &CriticalStockJob{Stock: stock, Warmer: warmer, Logger: logger, Metrics: metrics}
}

// Handle processes critical stock scan tasks.
func (j *CriticalStockJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Stock == nil {
		return errors.New("critical stock scan: handler not configured")
	}
	var payload CriticalStockScanPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	tracker := j.metrics().Track(TaskCriticalStockScan)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	start := time.Now()
	items, err := j.Stock.CriticalStock(ctx)
	if err != nil {
		logger.Error("load critical stock", slog.Any("error", err))
		return err
	}
	for _, p := range items {
		logger.Warn("product at critical stock",
			slog.Int64("product_id", p.ID),
			slog.String("product_code", p.ProductCode),
			slog.Float64("current_stock", p.CurrentStock),
			slog.Float64("critical_stock_level", p.CriticalStockLevel))
	}
	j.metrics().SetFlagged(TaskCriticalStockScan, len(items))

	if payload.WarmDashboard && j.Warmer != nil {
		if _, err := j.Warmer.Metrics(ctx); err != nil {
			logger.Error("warm dashboard metrics", slog.Any("error", err))
			return err
		}
	}
	logger.Info("completed critical stock scan", slog.Int("flagged", len(items)), slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *CriticalStockJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskCriticalStockScan))
	}
	return slog.Default().With(slog.String("job", TaskCriticalStockScan))
}

func (j *CriticalStockJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
