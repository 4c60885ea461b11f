// Package analytichttp serves the report, export and dashboard endpoints.
package analytichttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/analytics"
	"github.com/odyssey-erp/erp-dashboard/internal/analytics/export"
	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// ReportService exposes the read models served here.
type ReportService interface {
	Products(ctx context.Context) ([]analytics.ProductRow, error)
	Costs(ctx context.Context) ([]analytics.CostRow, error)
	Customers(ctx context.Context) ([]analytics.CustomerRow, error)
	Metrics(ctx context.Context) (analytics.DashboardMetrics, error)
}

// Handler serves /api/reports and /api/dashboard.
type Handler struct {
	logger      *slog.Logger
	service     ReportService
	rbac        rbac.Middleware
	exportLimit int
	now         func() time.Time
}

// NewHandler builds a Handler. exportLimit caps CSV exports per user per
// minute; values below one fall back to 10.
func NewHandler(logger *slog.Logger, service ReportService, rbac rbac.Middleware, exportLimit int) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if exportLimit < 1 {
		exportLimit = 10
	}
	return &Handler{logger: logger, service: service, rbac: rbac, exportLimit: exportLimit, now: time.Now}
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	kind, ok := analytics.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		httpx.RespondError(w, fmt.Errorf("report %w", httpx.ErrNotFound))
		return
	}
	var (
		rows any
		err  error
	)
	switch kind {
	case analytics.KindProducts:
		rows, err = h.service.Products(r.Context())
	case analytics.KindCosts:
		rows, err = h.service.Costs(r.Context())
	case analytics.KindCustomers:
		rows, err = h.service.Customers(r.Context())
	}
	if err != nil {
		h.fail(w, "load report failed", err, slog.String("report", string(kind)))
		return
	}
	httpx.OK(w, http.StatusOK, rows, "")
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	kind, ok := analytics.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		httpx.RespondError(w, fmt.Errorf("report %w", httpx.ErrNotFound))
		return
	}
	formatter := export.NewFormatter(r.URL.Query().Get("lang"))

	var write func(w http.ResponseWriter) error
	switch kind {
	case analytics.KindProducts:
		rows, err := h.service.Products(r.Context())
		if err != nil {
			h.fail(w, "export report failed", err, slog.String("report", string(kind)))
			return
		}
		write = func(w http.ResponseWriter) error { return export.WriteProducts(w, rows, formatter) }
	case analytics.KindCosts:
		rows, err := h.service.Costs(r.Context())
		if err != nil {
			h.fail(w, "export report failed", err, slog.String("report", string(kind)))
			return
		}
		write = func(w http.ResponseWriter) error { return export.WriteCosts(w, rows, formatter) }
	case analytics.KindCustomers:
		rows, err := h.service.Customers(r.Context())
		if err != nil {
			h.fail(w, "export report failed", err, slog.String("report", string(kind)))
			return
		}
		write = func(w http.ResponseWriter) error { return export.WriteCustomers(w, rows, formatter) }
	}

	filename := fmt.Sprintf("%s-report-%s.csv", kind, h.now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := write(w); err != nil {
		h.logger.Error("write csv export failed", slog.Any("error", err), slog.String("report", string(kind)))
	}
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.service.Metrics(r.Context())
	if err != nil {
		h.fail(w, "load dashboard metrics failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, metrics, "")
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error, attrs ...any) {
	if !httpx.IsClientError(err) {
		h.logger.Error(msg, append([]any{slog.Any("error", err)}, attrs...)...)
	}
	httpx.RespondError(w, err)
}
