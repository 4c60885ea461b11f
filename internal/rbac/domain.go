// Package rbac holds the static role registry, the access decision engine and
// the HTTP middleware that enforces them.
package rbac

import (
	"fmt"
	"strings"
)

// Role is one of the closed set of user classifications.
type Role string

// Known roles. No hierarchy is implied by the order.
const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleSalesRep Role = "Sales Rep"
	RoleViewer   Role = "Viewer"
)

var allRoles = [...]Role{RoleAdmin, RoleManager, RoleSalesRep, RoleViewer}

// Roles lists every known role.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles[:])
	return out
}

// ParseRole converts a raw string into a Role. Matching is exact.
func ParseRole(raw string) (Role, error) {
	for _, r := range allRoles {
		if string(r) == raw {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
}

// Valid reports whether r belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := roleBit(r)
	return ok
}

func (r Role) String() string { return string(r) }

// Permission names a capability gating one category of operation.
type Permission string

const (
	CreateProduct  Permission = "CREATE_PRODUCT"
	UpdateProduct  Permission = "UPDATE_PRODUCT"
	DeleteProduct  Permission = "DELETE_PRODUCT"
	ViewProduct    Permission = "VIEW_PRODUCT"
	CreateCost     Permission = "CREATE_COST"
	UpdateCost     Permission = "UPDATE_COST"
	DeleteCost     Permission = "DELETE_COST"
	ViewCost       Permission = "VIEW_COST"
	CreateCustomer Permission = "CREATE_CUSTOMER"
	UpdateCustomer Permission = "UPDATE_CUSTOMER"
	DeleteCustomer Permission = "DELETE_CUSTOMER"
	ViewCustomer   Permission = "VIEW_CUSTOMER"
	ViewReports    Permission = "VIEW_REPORTS"
	ExportReports  Permission = "EXPORT_REPORTS"
	ManageUsers    Permission = "MANAGE_USERS"
)

// ParsePermission accepts only names present in the registry.
func ParsePermission(raw string) (Permission, error) {
	p := Permission(strings.TrimSpace(raw))
	if !KnownPermission(p) {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, raw)
	}
	return p, nil
}

func (p Permission) String() string { return string(p) }

// Action is the kind of operation attempted on an owned resource.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var allActions = [...]Action{ActionView, ActionUpdate, ActionDelete}

// Valid reports whether a is one of view, update or delete.
func (a Action) Valid() bool {
	for _, known := range allActions {
		if known == a {
			return true
		}
	}
	return false
}

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
