package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
	"github.com/odyssey-erp/erp-dashboard/internal/users"
)

// UserStore is the slice of the users repository auth needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (users.User, error)
	Create(ctx context.Context, u users.User) (users.User, error)
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"notblank,max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      users.User `json:"user"`
}

// Service wraps authentication business rules.
type Service struct {
	store  UserStore
	tokens *TokenManager
	hooks  shared.MutationHooks
	authz  rbac.Middleware
	cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService constructs a new Service.
func NewService(store UserStore, tokens *TokenManager, hooks shared.MutationHooks) *Service {
	return &Service{store: store, tokens: tokens, hooks: hooks, cost: bcrypt.DefaultCost}
}

// WithAuthorizer sets the RBAC middleware used to vet elevated registrations.
func (s *Service) WithAuthorizer(m rbac.Middleware) *Service {
	s.authz = m
	return s
}

// WithHashCost overrides the bcrypt cost, mainly so tests run fast.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

// Register creates a new account. Accounts default to Viewer; any other role
// requires a principal on ctx holding MANAGE_USERS.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (users.User, error) {
	if err := shared.Validate(req); err != nil {
		return users.User{}, err
	}
	role := rbac.RoleViewer
	if req.Role != "" {
		parsed, err := rbac.ParseRole(req.Role)
		if err != nil {
			return users.User{}, httpx.Invalid("role", "must be one of Admin, Manager, Sales Rep, Viewer")
		}
		role = parsed
	}
	if role != rbac.RoleViewer {
		if err := s.authz.Authorize(ctx, rbac.ManageUsers); err != nil {
			if errors.Is(err, httpx.ErrUnauthorized) {
				return users.User{}, fmt.Errorf("%w: role %s requires an administrator", rbac.ErrPermissionDenied, role)
			}
			return users.User{}, err
		}
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return users.User{}, fmt.Errorf("%w: email already registered", httpx.ErrDuplicate)
	case !errors.Is(err, httpx.ErrNotFound):
		return users.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return users.User{}, fmt.Errorf("auth: hash password: %w", err)
	}
	created, err := s.store.Create(ctx, users.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		PasswordHash: string(hash),
	})
	if err != nil {
		return users.User{}, err
	}
	s.hooks.After(ctx, shared.AuditLog{
		ActorID:  actorOr(ctx, created.ID),
		Action:   "register",
		Entity:   "user",
		EntityID: created.ID,
		Meta:     map[string]any{"role": string(role)},
	})
	return created, nil
}

// Login checks credentials and issues a bearer token carrying the stored role.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	if err := shared.Validate(req); err != nil {
		return LoginResult{}, err
	}
	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			// Spend the same bcrypt work as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.missHash(), []byte(req.Password))
			return LoginResult{}, ErrInvalidLogin
		}
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, ErrInvalidLogin
	}
	if !user.Role.Valid() {
		if s.hooks.Logger != nil {
			s.hooks.Logger.Error("stored user role is not recognised",
				slog.String("user_id", user.ID),
				slog.String("role", string(user.Role)))
		}
		return LoginResult{}, ErrInvalidLogin
	}
	token, claim, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: claim.ExpiresAt, User: user}, nil
}

// missHash is a throwaway hash at the service's cost, compared against when
// the email is unknown.
func (s *Service) missHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func actorOr(ctx context.Context, fallback string) string {
	if id := rbac.ActorID(ctx); id != "" {
		return id
	}
	return fallback
}
