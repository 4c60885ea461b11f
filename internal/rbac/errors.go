package rbac

import (
	"errors"
	"fmt"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
)

var (
	// ErrPermissionDenied is returned when an authenticated principal lacks
	// the role or ownership required for an operation.
	ErrPermissionDenied = fmt.Errorf("%w: insufficient permissions", httpx.ErrForbidden)
	// ErrUnknownPermission flags a permission name missing from the registry.
	ErrUnknownPermission = errors.New("rbac: unknown permission")
	// ErrUnknownRole flags a role string outside the closed set.
	ErrUnknownRole = errors.New("rbac: unknown role")
)
