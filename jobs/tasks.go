// Package jobs runs the dashboard's background tasks on asynq.
package jobs

import (
	json "github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCriticalStockScan flags products at or below their critical level.
	TaskCriticalStockScan = "stock:critical-scan"
	// TaskReportsWarmup pre-populates the report cache.
	TaskReportsWarmup = "reports:warmup"
)

// CriticalStockScanPayload parameterises a scan run.
type CriticalStockScanPayload struct {
	// WarmDashboard refreshes the cached dashboard counters after the scan.
	WarmDashboard bool `json:"warm_dashboard"`
}

// ReportsWarmupPayload names the reports to warm. Empty means all.
type ReportsWarmupPayload struct {
	Reports []string `json:"reports,omitempty"`
}

// NewCriticalStockScanTask constructs the scan task.
func NewCriticalStockScanTask(warmDashboard bool) (*asynq.Task, error) {
	data, err := json.Marshal(CriticalStockScanPayload{WarmDashboard: warmDashboard})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCriticalStockScan, data), nil
}

// NewReportsWarmupTask constructs the warmup task.
func NewReportsWarmupTask(reports ...string) (*asynq.Task, error) {
	data, err := json.Marshal(ReportsWarmupPayload{Reports: reports})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}
