package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/erp-dashboard/internal/analytics"
	jobmetrics "github.com/odyssey-erp/erp-dashboard/internal/jobs"
	"github.com/odyssey-erp/erp-dashboard/internal/masterdata/products"
)

type stubStock struct {
	items []products.Product
	err   error
}

func (s stubStock) CriticalStock(context.Context) ([]products.Product, error) {
	return s.items, s.err
}

type stubReports struct {
	loaded  []analytics.Kind
	metrics int
	err     error
}

func (s *stubReports) Report(_ context.Context, kind analytics.Kind) (any, error) {
	s.loaded = append(s.loaded, kind)
	return nil, s.err
}

func (s *stubReports) Metrics(context.Context) (analytics.DashboardMetrics, error) {
	s.metrics++
	return analytics.DashboardMetrics{}, s.err
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestCriticalStockScanLogsFlaggedProducts(t *testing.T) {
	logger, buf := bufferLogger()
	stock := stubStock{items: []products.Product{
		{ID: 1, ProductCode: "W-1", CurrentStock: 2, CriticalStockLevel: 5},
		{ID: 2, ProductCode: "W-2", CurrentStock: 5, CriticalStockLevel: 5},
	}}
	warmer := &stubReports{}
	job := NewCriticalStockJob(stock, warmer, logger, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	task, err := NewCriticalStockScanTask(true)
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	assert.Contains(t, buf.String(), "product_code=W-1")
	assert.Contains(t, buf.String(), "product_code=W-2")
	assert.Contains(t, buf.String(), "flagged=2")
	assert.Equal(t, 1, warmer.metrics)
}

func TestCriticalStockScanWithoutWarmup(t *testing.T) {
	logger, _ := bufferLogger()
	warmer := &stubReports{}
	job := NewCriticalStockJob(stubStock{}, warmer, logger, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	task, err := NewCriticalStockScanTask(false)
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Zero(t, warmer.metrics)
}

func TestCriticalStockScanPropagatesErrors(t *testing.T) {
	logger, _ := bufferLogger()
	boom := errors.New("db down")
	job := NewCriticalStockJob(stubStock{err: boom}, nil, logger, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	err := job.Handle(context.Background(), asynq.NewTask(TaskCriticalStockScan, nil))
	assert.ErrorIs(t, err, boom)
}

func TestCriticalStockScanRejectsBadPayload(t *testing.T) {
	job := NewCriticalStockJob(stubStock{}, nil, nil, nil)
	err := job.Handle(context.Background(), asynq.NewTask(TaskCriticalStockScan, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestReportsWarmupLoadsEveryReport(t *testing.T) {
	reports := &stubReports{}
	job := NewReportsWarmupJob(reports, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	task, err := NewReportsWarmupTask()
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	assert.Equal(t, []analytics.Kind{analytics.KindProducts, analytics.KindCosts, analytics.KindCustomers}, reports.loaded)
	assert.Equal(t, 1, reports.metrics)
}

func TestReportsWarmupRejectsUnknownReport(t *testing.T) {
	reports := &stubReports{}
	job := NewReportsWarmupJob(reports, nil, nil)

	task, err := NewReportsWarmupTask("ledger")
	require.NoError(t, err)
	err = job.Handle(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, reports.loaded)
}

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) {
	return s.info, s.err
}

func healthResponse(t *testing.T, inspector QueueInspector) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewHandler(inspector, nil).MountRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestHealthReportsQueueDepth(t *testing.T) {
	rec := healthResponse(t, stubInspector{info: &asynq.QueueInfo{Queue: "default", Pending: 4, Active: 1}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"queue":"default","pending":4,"active":1,"failed":0}`, rec.Body.String())
}

func TestHealthWithoutInspector(t *testing.T) {
	rec := healthResponse(t, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"queue":"default","pending":0,"active":0,"failed":0}`, rec.Body.String())
}

func TestHealthQueueUnreachable(t *testing.T) {
	rec := healthResponse(t, stubInspector{err: errors.New("dial tcp: refused")})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
