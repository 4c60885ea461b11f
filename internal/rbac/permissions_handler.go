package rbac

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
)

// PermissionsHandler exposes the registry for administrators.
type PermissionsHandler struct {
	rbac Middleware
}

// NewPermissionsHandler builds PermissionsHandler instance.
func NewPermissionsHandler(rbac Middleware) *PermissionsHandler {
	return &PermissionsHandler{rbac: rbac}
}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(ManageUsers))
		r.Get("/", h.listPermissions)
		r.Get("/{name}", h.getPermission)
	})
}

type permissionView struct {
	Name  Permission `json:"name"`
	Roles []Role     `json:"roles"`
}

func (h *PermissionsHandler) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms := Permissions()
	out := make([]permissionView, 0, len(perms))
	for _, p := range perms {
		out = append(out, permissionView{Name: p, Roles: PermissionRoles(p).Roles()})
	}
	httpx.OK(w, http.StatusOK, out, "")
}

func (h *PermissionsHandler) getPermission(w http.ResponseWriter, r *http.Request) {
	p, err := ParsePermission(chi.URLParam(r, "name"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrNotFound, err))
		return
	}
	httpx.OK(w, http.StatusOK, permissionView{Name: p, Roles: PermissionRoles(p).Roles()}, "")
}
