package rbac

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
)

// Decision outcomes reported to the recorder.
const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
	OutcomeUnknown = "unknown_permission"
)

// DecisionRecorder receives one observation per permission check.
type DecisionRecorder interface {
	RecordDecision(permission, outcome string)
}

// Middleware wires RBAC authorization helpers for HTTP handlers.
type Middleware struct {
	Logger  *slog.Logger
	Metrics DecisionRecorder
}

// Require ensures the current principal holds perm.
func (m Middleware) Require(perm Permission) func(http.Handler) http.Handler {
	return m.RequireAll(perm)
}

// RequireAll ensures the current principal holds every listed permission.
func (m Middleware) RequireAll(perms ...Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, perm := range perms {
				if err := m.Authorize(r.Context(), perm); err != nil {
					httpx.RespondError(w, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authorize checks perm for the principal on ctx. It returns
// httpx.ErrUnauthorized when no principal is present and ErrPermissionDenied
// when the check fails, including for unregistered permissions.
func (m Middleware) Authorize(ctx context.Context, perm Permission) error {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return httpx.ErrUnauthorized
	}
	role := principal.PrincipalRole()
	if !KnownPermission(perm) {
		m.log().Error("rbac permission missing from registry",
			slog.String("permission", perm.String()))
		m.record(perm, OutcomeUnknown)
		return ErrPermissionDenied
	}
	if decision := Check(role, perm); !decision.Allowed {
		m.log().Warn("rbac permission denied",
			slog.String("permission", perm.String()),
			slog.String("role", role.String()),
			slog.String("user_id", principal.PrincipalID()),
			slog.String("reason", decision.Reason))
		m.record(perm, OutcomeDenied)
		return ErrPermissionDenied
	}
	m.record(perm, OutcomeAllowed)
	return nil
}

// AuthorizeResource applies the ownership rule for action on a record owned
// by ownerID.
func (m Middleware) AuthorizeResource(ctx context.Context, ownerID string, action Action) error {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return httpx.ErrUnauthorized
	}
	decision := CheckResource(principal.PrincipalRole(), principal.PrincipalID(), ownerID, action)
	if decision.Allowed {
		return nil
	}
	m.log().Warn("rbac resource access denied",
		slog.String("action", string(action)),
		slog.String("role", principal.PrincipalRole().String()),
		slog.String("user_id", principal.PrincipalID()),
		slog.String("reason", decision.Reason))
	m.record(Permission("resource:"+string(action)), OutcomeDenied)
	return ErrPermissionDenied
}

func (m Middleware) log() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

func (m Middleware) record(perm Permission, outcome string) {
	if m.Metrics != nil {
		m.Metrics.RecordDecision(perm.String(), outcome)
	}
}
