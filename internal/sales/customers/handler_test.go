package customers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/sales/customers"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
	"github.com/odyssey-erp/erp-dashboard/internal/testing/guard"
)

type stubRepo struct {
	rows   map[int64]customers.Customer
	nextID int64
	calls  int
}

func newStubRepo(seed ...customers.Customer) *stubRepo {
	s := &stubRepo{rows: map[int64]customers.Customer{}, nextID: 1}
	for _, c := range seed {
		c.ID = s.nextID
		s.rows[c.ID] = c
		s.nextID++
	}
	return s
}

func (s *stubRepo) List(context.Context, shared.ListParams) ([]customers.Customer, int, error) {
	s.calls++
	out := []customers.Customer{}
	for _, c := range s.rows {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (customers.Customer, error) {
	s.calls++
	c, ok := s.rows[id]
	if !ok {
		return customers.Customer{}, fmt.Errorf("customer %w", httpx.ErrNotFound)
	}
	return c, nil
}

func (s *stubRepo) GetByCode(_ context.Context, code string) (customers.Customer, error) {
	s.calls++
	for _, c := range s.rows {
		if c.CustomerCode == code {
			return c, nil
		}
	}
	return customers.Customer{}, fmt.Errorf("customer %w", httpx.ErrNotFound)
}

func (s *stubRepo) GroupBySalesRep(context.Context) ([]customers.SalesRepGroup, error) {
	s.calls++
	groups := map[string]*customers.SalesRepGroup{}
	out := []customers.SalesRepGroup{}
	for _, c := range s.rows {
		if c.SalesRep == "" {
			continue
		}
		g, ok := groups[c.SalesRep]
		if !ok {
			g = &customers.SalesRepGroup{SalesRep: c.SalesRep}
			groups[c.SalesRep] = g
		}
		g.CustomerCount++
		g.Customers = append(g.Customers, c.CustomerName)
	}
	for _, g := range groups {
		out = append(out, *g)
	}
	return out, nil
}

func (s *stubRepo) RiskAnalysis(context.Context) ([]customers.RiskEntry, error) {
	s.calls++
	out := []customers.RiskEntry{}
	for _, c := range s.rows {
		if c.AtRisk() {
			out = append(out, customers.RiskEntry{ID: c.ID, CustomerName: c.CustomerName, BalanceRiskLimit: c.BalanceRiskLimit})
		}
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, c customers.Customer) (customers.Customer, error) {
	s.calls++
	c.ID = s.nextID
	s.nextID++
	s.rows[c.ID] = c
	return c, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, c customers.Customer) (customers.Customer, error) {
	s.calls++
	c.ID = id
	c.CreatedBy = s.rows[id].CreatedBy
	s.rows[id] = c
	return c, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.calls++
	delete(s.rows, id)
	return nil
}

func newRouter(repo *stubRepo) http.Handler {
	r := chi.NewRouter()
	customers.NewHandler(nil, customers.NewService(repo, shared.MutationHooks{}), rbac.Middleware{}).MountRoutes(r)
	return r
}

func send(router http.Handler, userID string, role rbac.Role, method, target, body string) *httptest.ResponseRecorder {
	req := guard.As(httptest.NewRequest(method, target, strings.NewReader(body)), userID, role)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const createBody = `{"customer_name":"PT Sinar Jaya","customer_code":"sj-01","email":"Buyer@SinarJaya.co.id","telephone_number":"+62 21 555-0101","sales_rep":"Rina","balance_risk_limit":25000000}`

func TestViewerCannotCreateCustomerAndStoreIsUntouched(t *testing.T) {
	repo := newStubRepo()
	rec := send(newRouter(repo), "v1", rbac.RoleViewer, http.MethodPost, "/", createBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, repo.calls)
	assert.NotContains(t, rec.Body.String(), "Sales Rep")
}

func TestSalesRepCreatesOwnedCustomer(t *testing.T) {
	repo := newStubRepo()
	rec := send(newRouter(repo), "u1", rbac.RoleSalesRep, http.MethodPost, "/", createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data customers.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.Data.CreatedBy)
	assert.Equal(t, "SJ-01", body.Data.CustomerCode)
	assert.Equal(t, "buyer@sinarjaya.co.id", body.Data.Email)
}

func TestCreateCustomerDuplicateAndValidation(t *testing.T) {
	repo := newStubRepo(customers.Customer{CustomerCode: "SJ-01", CustomerName: "Existing", Email: "a@b.co"})
	router := newRouter(repo)
	assert.Equal(t, http.StatusConflict, send(router, "u1", rbac.RoleAdmin, http.MethodPost, "/", createBody).Code)

	cases := map[string]string{
		"missing email":  `{"customer_name":"A","customer_code":"A1"}`,
		"bad email":      `{"customer_name":"A","customer_code":"A1","email":"nope"}`,
		"bad phone":      `{"customer_name":"A","customer_code":"A1","email":"a@b.co","telephone_number":"12ab"}`,
		"short phone":    `{"customer_name":"A","customer_code":"A1","email":"a@b.co","telephone_number":"123"}`,
		"negative limit": `{"customer_name":"A","customer_code":"A1","email":"a@b.co","payment_terms_limit":-5}`,
	}
	for name, body := range cases {
		assert.Equal(t, http.StatusBadRequest, send(router, "u1", rbac.RoleAdmin, http.MethodPost, "/", body).Code, name)
	}
}

func TestSalesRepUpdatesOwnCustomerOnly(t *testing.T) {
	repo := newStubRepo(
		customers.Customer{CustomerCode: "OWN", CustomerName: "Own", Email: "own@x.co", CreatedBy: "u1"},
		customers.Customer{CustomerCode: "FOREIGN", CustomerName: "Foreign", Email: "f@x.co", CreatedBy: "u2"},
	)
	router := newRouter(repo)

	own := `{"customer_name":"Own Renamed","customer_code":"OWN","email":"own@x.co"}`
	rec := send(router, "u1", rbac.RoleSalesRep, http.MethodPut, "/1", own)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Own Renamed", repo.rows[1].CustomerName)

	foreign := `{"customer_name":"Hijacked","customer_code":"FOREIGN","email":"f@x.co"}`
	rec = send(router, "u1", rbac.RoleSalesRep, http.MethodPut, "/2", foreign)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Foreign", repo.rows[2].CustomerName)

	rec = send(router, "m1", rbac.RoleManager, http.MethodPut, "/2", foreign)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestForeignUpdateIsDeniedBeforeValidation(t *testing.T) {
	repo := newStubRepo(customers.Customer{CustomerCode: "FOREIGN", CustomerName: "Foreign", Email: "f@x.co", CreatedBy: "u2"})
	rec := send(newRouter(repo), "u1", rbac.RoleSalesRep, http.MethodPut, "/1", `{"customer_name":"","email":"not-an-email"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "email")
	assert.Equal(t, "Foreign", repo.rows[1].CustomerName)
}

func TestUpdateCannotStealAnotherCode(t *testing.T) {
	repo := newStubRepo(
		customers.Customer{CustomerCode: "A", CustomerName: "A", Email: "a@x.co", CreatedBy: "u1"},
		customers.Customer{CustomerCode: "B", CustomerName: "B", Email: "b@x.co", CreatedBy: "u1"},
	)
	rec := send(newRouter(repo), "u1", rbac.RoleAdmin, http.MethodPut, "/1", `{"customer_name":"A","customer_code":"B","email":"a@x.co"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSalesRepNeverDeletes(t *testing.T) {
	repo := newStubRepo(customers.Customer{CustomerCode: "OWN", CustomerName: "Own", Email: "own@x.co", CreatedBy: "u1"})
	router := newRouter(repo)
	assert.Equal(t, http.StatusForbidden, send(router, "u1", rbac.RoleSalesRep, http.MethodDelete, "/1", "").Code)
	assert.Len(t, repo.rows, 1)
	assert.Equal(t, http.StatusOK, send(router, "m1", rbac.RoleManager, http.MethodDelete, "/1", "").Code)
	assert.Empty(t, repo.rows)
}

func TestReadEndpoints(t *testing.T) {
	repo := newStubRepo(
		customers.Customer{CustomerCode: "A", CustomerName: "Alpha", Email: "a@x.co", SalesRep: "Rina", BalanceRiskLimit: 10},
		customers.Customer{CustomerCode: "B", CustomerName: "Beta", Email: "b@x.co", SalesRep: "Rina"},
	)
	router := newRouter(repo)
	for _, role := range rbac.Roles() {
		assert.Equal(t, http.StatusOK, send(router, "x", role, http.MethodGet, "/", "").Code)
		assert.Equal(t, http.StatusOK, send(router, "x", role, http.MethodGet, "/1", "").Code)

		rec := send(router, "x", role, http.MethodGet, "/by-sales-rep", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"customer_count":2`)

		rec = send(router, "x", role, http.MethodGet, "/risk-analysis", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Alpha")
		assert.NotContains(t, rec.Body.String(), "Beta")
	}
	assert.Equal(t, http.StatusNotFound, send(router, "x", rbac.RoleViewer, http.MethodGet, "/99", "").Code)
}
