package rbac

// HasPermission reports whether role is entitled to perm.
func HasPermission(role Role, perm Permission) bool {
	return PermissionRoles(perm).Has(role)
}

// Check is HasPermission with a reason attached to denials.
func Check(role Role, perm Permission) Decision {
	switch {
	case !KnownPermission(perm):
		return Decision{Reason: "unknown permission"}
	case !role.Valid():
		return Decision{Reason: "unknown role"}
	case !HasPermission(role, perm):
		return Decision{Reason: "role not entitled"}
	}
	return Decision{Allowed: true}
}

// CanAccessResource decides whether a principal may perform action on a
// record owned by ownerID. An empty ownerID never matches.
func CanAccessResource(role Role, userID, ownerID string, action Action) bool {
	return CheckResource(role, userID, ownerID, action).Allowed
}

// CheckResource is CanAccessResource with a reason attached to denials.
func CheckResource(role Role, userID, ownerID string, action Action) Decision {
	if !action.Valid() {
		return Decision{Reason: "unknown action"}
	}

	switch role {
	case RoleAdmin, RoleManager:
		return Decision{Allowed: true}
	case RoleSalesRep:
		switch action {
		case ActionView:
			return Decision{Allowed: true}
		case ActionUpdate:
			if ownerID != "" && userID == ownerID {
				return Decision{Allowed: true}
			}
			return Decision{Reason: "not the resource owner"}
		default:
			return Decision{Reason: "action not permitted for role"}
		}
	case RoleViewer:
		if action == ActionView {
			return Decision{Allowed: true}
		}
		return Decision{Reason: "action not permitted for role"}
	}
	return Decision{Reason: "unknown role"}
}

// AllowedActions summarises what role may do, keyed by permission name. Used
// by clients to toggle controls.
func AllowedActions(role Role) map[Permission]bool {
	out := make(map[Permission]bool, len(registry))
	for p := range registry {
		out[p] = HasPermission(role, p)
	}
	return out
}
