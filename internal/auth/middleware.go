package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// FailureRecorder receives one observation per rejected request.
type FailureRecorder interface {
	RecordAuthFailure(reason string)
}

// Middleware enforces the Gate on every request it wraps.
type Middleware struct {
	Gate    *Gate
	Logger  *slog.Logger
	Metrics FailureRecorder
}

// RequireAuth rejects unauthenticated requests with 401 and stores the claim
// on the request context otherwise.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.authenticate(w, r, next)
	})
}

// OptionalAuth lets requests without an Authorization header through
// anonymously. A header that is present must verify, otherwise 401.
func (m Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		m.authenticate(w, r, next)
	})
}

func (m Middleware) authenticate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	res := m.Gate.Authenticate(r)
	if !res.Authenticated {
		reason := FailureReason(res.Err)
		if m.Metrics != nil {
			m.Metrics.RecordAuthFailure(reason)
		}
		if m.Logger != nil {
			m.Logger.Debug("auth rejected request",
				slog.String("path", r.URL.Path),
				slog.String("reason", reason))
		}
		public := ErrInvalidCredential
		if errors.Is(res.Err, ErrMissingOrMalformedHeader) {
			public = ErrMissingOrMalformedHeader
		}
		httpx.RespondError(w, public)
		return
	}
	ctx := rbac.ContextWithPrincipal(r.Context(), res.Claim)
	next.ServeHTTP(w, r.WithContext(ctx))
}
