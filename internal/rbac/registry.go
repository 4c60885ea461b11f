package rbac

import "sort"

// RoleSet is an immutable set of roles. The zero value is the empty set.
type RoleSet struct {
	bits uint8
}

func roleBit(r Role) (uint8, bool) {
	for i, known := range allRoles {
		if known == r {
			return 1 << uint(i), true
		}
	}
	return 0, false
}

func newRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		if bit, ok := roleBit(r); ok {
			s.bits |= bit
		}
	}
	return s
}

// Has reports whether r is a member of the set.
func (s RoleSet) Has(r Role) bool {
	bit, ok := roleBit(r)
	return ok && s.bits&bit != 0
}

// Roles returns the members in registry order. Never nil.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(allRoles))
	for _, r := range allRoles {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

var (
	everyone   = newRoleSet(RoleAdmin, RoleManager, RoleSalesRep, RoleViewer)
	management = newRoleSet(RoleAdmin, RoleManager)
	fieldStaff = newRoleSet(RoleAdmin, RoleManager, RoleSalesRep)
	adminsOnly = newRoleSet(RoleAdmin)
)

// registry is filled during package initialisation and never written again.
var registry = map[Permission]RoleSet{
	CreateProduct: management,
	UpdateProduct: management,
	DeleteProduct: management,
	ViewProduct:   everyone,

	CreateCost: management,
	UpdateCost: management,
	DeleteCost: management,
	ViewCost:   everyone,

	CreateCustomer: fieldStaff,
	UpdateCustomer: fieldStaff,
	DeleteCustomer: management,
	ViewCustomer:   everyone,

	ViewReports:   everyone,
	ExportReports: management,

	ManageUsers: adminsOnly,
}

// PermissionRoles returns the roles entitled to p. Unknown names yield the
// empty set.
func PermissionRoles(p Permission) RoleSet {
	return registry[p]
}

// KnownPermission reports whether p exists in the registry.
func KnownPermission(p Permission) bool {
	_, ok := registry[p]
	return ok
}

// Permissions lists every registered permission in name order.
func Permissions() []Permission {
	out := make([]Permission, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PermissionsFor lists the permissions granted to r in name order.
func PermissionsFor(r Role) []Permission {
	out := make([]Permission, 0, len(registry))
	for _, p := range Permissions() {
		if registry[p].Has(r) {
			out = append(out, p)
		}
	}
	return out
}
