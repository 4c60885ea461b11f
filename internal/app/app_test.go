package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/erp-dashboard/internal/auth"
	"github.com/odyssey-erp/erp-dashboard/internal/masterdata/products"
	"github.com/odyssey-erp/erp-dashboard/internal/observability"
	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
	testenv "github.com/odyssey-erp/erp-dashboard/testing"
)

type emptyProducts struct{}

func (emptyProducts) List(context.Context, shared.ListParams) ([]products.Product, int, error) {
	return []products.Product{}, 0, nil
}
func (emptyProducts) ListCritical(context.Context) ([]products.Product, error) {
	return []products.Product{}, nil
}
func (emptyProducts) Get(context.Context, int64) (products.Product, error) {
	return products.Product{}, httpx.ErrNotFound
}
func (emptyProducts) Create(_ context.Context, p products.Product) (products.Product, error) {
	return p, nil
}
func (emptyProducts) Update(_ context.Context, _ int64, p products.Product) (products.Product, error) {
	return p, nil
}
func (emptyProducts) Delete(context.Context, int64) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager(auth.TokenConfig{Secret: testenv.JWTSecret, Issuer: "erp-dashboard", TTL: time.Hour})
	require.NoError(t, err)
	metrics := observability.NewMetrics()
	rbacMW := rbac.Middleware{Metrics: metrics}
	authMW := auth.Middleware{Gate: auth.NewGate(tokens), Metrics: metrics}

	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second, RateLimitPerMinute: 1000}
	router := NewRouter(RouterParams{
		Config:          cfg,
		Metrics:         metrics,
		AuthMiddleware:  authMW,
		ProductsHandler: products.NewHandler(nil, products.NewService(emptyProducts{}, shared.MutationHooks{}), rbacMW),
	})
	return router, tokens
}

func TestHealthzIsPublicWithSecureHeaders(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestAPIRequiresBearerToken(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestAPIEnforcesPermissions(t *testing.T) {
	router, tokens := newTestRouter(t)

	viewer, _, err := tokens.Issue("viewer-1", rbac.RoleViewer)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+viewer)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
	req.Header.Set("Authorization", "Bearer "+viewer)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	scrape := httptest.NewRecorder()
	router.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `erp_authz_decisions_total{outcome="denied",permission="DELETE_PRODUCT"} 1`)
}

func TestUnknownRouteIsProblemJSON(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestLoadConfigRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")
	_, err := LoadConfig()
	assert.ErrorIs(t, err, auth.ErrWeakSecret)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testenv.JWTSecret)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.ReportCacheTTL)
	assert.False(t, cfg.IsProduction())
}
