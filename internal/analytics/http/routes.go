package analytichttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// MountReports registers the report endpoints under /reports.
func (h *Handler) MountReports(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(h.exportLimit, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests", "export limit reached, retry later")
		}),
	)

	r.With(h.rbac.Require(rbac.ViewReports)).Get("/{kind}", h.handleReport)
	r.Group(func(gr chi.Router) {
		gr.Use(h.rbac.RequireAll(rbac.ViewReports, rbac.ExportReports))
		gr.Use(limiter)
		gr.Get("/{kind}/export.csv", h.handleCSV)
	})
}

// MountDashboard registers the dashboard endpoints under /dashboard.
func (h *Handler) MountDashboard(r chi.Router) {
	if h == nil {
		return
	}
	r.With(h.rbac.Require(rbac.ViewReports)).Get("/metrics", h.handleMetrics)
}

func rateLimitKey(r *http.Request) (string, error) {
	if user := strings.TrimSpace(rbac.ActorID(r.Context())); user != "" {
		return "user:" + user, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
