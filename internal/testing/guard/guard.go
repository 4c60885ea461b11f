// Package guard provides request helpers for handler tests that sit behind
// the auth gate.
package guard

import (
	"net/http"
	"os"
	"sync"

	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("DASHBOARD_TEST_MODE") == "" {
			_ = os.Setenv("DASHBOARD_TEST_MODE", "1")
		}
	})
}

// Principal is a fixed identity for tests.
type Principal struct {
	ID   string
	Role rbac.Role
}

func (p Principal) PrincipalID() string      { return p.ID }
func (p Principal) PrincipalRole() rbac.Role { return p.Role }

// As returns req carrying the given identity, as the auth middleware would.
func As(req *http.Request, id string, role rbac.Role) *http.Request {
	return req.WithContext(rbac.ContextWithPrincipal(req.Context(), Principal{ID: id, Role: role}))
}
