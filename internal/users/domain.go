package users

import (
	"time"

	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// User represents a dashboard account. The role column is the source of the
// role embedded in issued tokens.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         rbac.Role `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChangeRoleRequest is the body of PUT /api/users/{id}/role.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
