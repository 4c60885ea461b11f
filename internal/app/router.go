package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	analytichttp "github.com/odyssey-erp/erp-dashboard/internal/analytics/http"
	"github.com/odyssey-erp/erp-dashboard/internal/auth"
	"github.com/odyssey-erp/erp-dashboard/internal/masterdata/costs"
	"github.com/odyssey-erp/erp-dashboard/internal/masterdata/products"
	"github.com/odyssey-erp/erp-dashboard/internal/observability"
	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/sales/customers"
	"github.com/odyssey-erp/erp-dashboard/internal/users"
	"github.com/odyssey-erp/erp-dashboard/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	AuthMiddleware     auth.Middleware
	AuthHandler        *auth.Handler
	ProductsHandler    *products.Handler
	CostsHandler       *costs.Handler
	CustomersHandler   *customers.Handler
	UsersHandler       *users.Handler
	PermissionsHandler *rbac.PermissionsHandler
	ReportsHandler     *analytichttp.Handler
	JobHandler         *jobs.Handler
}

// NewRouter constructs the chi.Router with the dashboard defaults. Everything
// under /api except registration and login sits behind the auth gate.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported here")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.Route("/api", func(api chi.Router) {
		if params.AuthHandler != nil {
			api.Route("/auth", params.AuthHandler.MountRoutes)
		}
		api.Group(func(gated chi.Router) {
			gated.Use(params.AuthMiddleware.RequireAuth)
			if params.ProductsHandler != nil {
				gated.Route("/products", params.ProductsHandler.MountRoutes)
			}
			if params.CostsHandler != nil {
				gated.Route("/product-costs", params.CostsHandler.MountRoutes)
			}
			if params.CustomersHandler != nil {
				gated.Route("/customers", params.CustomersHandler.MountRoutes)
			}
			if params.UsersHandler != nil {
				gated.Route("/users", params.UsersHandler.MountRoutes)
			}
			if params.PermissionsHandler != nil {
				gated.Route("/permissions", params.PermissionsHandler.MountRoutes)
			}
			if params.ReportsHandler != nil {
				gated.Route("/reports", params.ReportsHandler.MountReports)
				gated.Route("/dashboard", params.ReportsHandler.MountDashboard)
			}
		})
	})

	return r
}
