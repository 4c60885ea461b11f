// Package auth verifies bearer credentials and issues them at login.
package auth

import (
	"context"
	"time"

	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// Claim is the verified identity carried by a request. Never persisted.
type Claim struct {
	UserID    string    `json:"user_id"`
	Role      rbac.Role `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PrincipalID implements rbac.Principal.
func (c Claim) PrincipalID() string { return c.UserID }

// PrincipalRole implements rbac.Principal.
func (c Claim) PrincipalRole() rbac.Role { return c.Role }

// ClaimFromContext returns the claim stored by Middleware.
func ClaimFromContext(ctx context.Context) (Claim, bool) {
	p, ok := rbac.PrincipalFromContext(ctx)
	if !ok {
		return Claim{}, false
	}
	claim, ok := p.(Claim)
	return claim, ok
}
