package costs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
	"github.com/odyssey-erp/erp-dashboard/internal/testing/guard"
)

func httptestRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil)
}

func newRouter(repo *memRepo) http.Handler {
	r := chi.NewRouter()
	NewHandler(nil, NewService(repo, shared.MutationHooks{}), rbac.Middleware{}).MountRoutes(r)
	return r
}

func send(router http.Handler, role rbac.Role, method, target, body string) *httptest.ResponseRecorder {
	req := guard.As(httptest.NewRequest(method, target, strings.NewReader(body)), "u1", role)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCostRoutesPermissions(t *testing.T) {
	repo := newMemRepo()
	router := newRouter(repo)
	body := `{"product_id":1,"month":"2026-04-09","unit_cost":7.25}`

	assert.Equal(t, http.StatusForbidden, send(router, rbac.RoleSalesRep, http.MethodPost, "/", body).Code)
	assert.Equal(t, http.StatusForbidden, send(router, rbac.RoleViewer, http.MethodPost, "/", body).Code)
	assert.Zero(t, repo.writes)

	rec := send(router, rbac.RoleManager, http.MethodPost, "/", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"month":"2026-04-01T00:00:00Z"`)

	assert.Equal(t, http.StatusConflict, send(router, rbac.RoleManager, http.MethodPost, "/", body).Code)

	for _, role := range rbac.Roles() {
		assert.Equal(t, http.StatusOK, send(router, role, http.MethodGet, "/", "").Code)
		assert.Equal(t, http.StatusOK, send(router, role, http.MethodGet, "/by-product/1", "").Code)
		assert.Equal(t, http.StatusOK, send(router, role, http.MethodGet, "/1", "").Code)
	}

	assert.Equal(t, http.StatusBadRequest, send(router, rbac.RoleManager, http.MethodPut, "/1", `{"unit_cost":0}`).Code)
	assert.Equal(t, http.StatusOK, send(router, rbac.RoleManager, http.MethodPut, "/1", `{"unit_cost":8}`).Code)
	assert.Equal(t, http.StatusForbidden, send(router, rbac.RoleViewer, http.MethodDelete, "/1", "").Code)
	assert.Equal(t, http.StatusOK, send(router, rbac.RoleAdmin, http.MethodDelete, "/1", "").Code)
	assert.Equal(t, http.StatusNotFound, send(router, rbac.RoleAdmin, http.MethodGet, "/1", "").Code)
}

func TestCreateCostForMissingProduct(t *testing.T) {
	rec := send(newRouter(newMemRepo()), rbac.RoleAdmin, http.MethodPost, "/", `{"product_id":42,"month":"2026-04-01","unit_cost":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
