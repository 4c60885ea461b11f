package users

import (
	"context"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	UpdateRole(ctx context.Context, id string, role rbac.Role) (User, error)
}

// Service handles user business logic.
type Service struct {
	repo  RepositoryPort
	hooks shared.MutationHooks
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, hooks shared.MutationHooks) *Service {
	return &Service{repo: repo, hooks: hooks}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// ChangeRole assigns a new role. Tokens already issued keep the old role
// until they expire.
func (s *Service) ChangeRole(ctx context.Context, actorID, id, rawRole string) (User, error) {
	role, err := rbac.ParseRole(rawRole)
	if err != nil {
		return User{}, httpx.Invalid("role", "must be one of Admin, Manager, Sales Rep, Viewer")
	}
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	updated, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return User{}, err
	}
	s.hooks.After(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "change_role",
		Entity:   "user",
		EntityID: id,
		Meta:     map[string]any{"from": string(before.Role), "to": string(role)},
	})
	return updated, nil
}
