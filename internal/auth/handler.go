package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger  *slog.Logger
	service *Service
	auth    Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, auth Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, auth: auth}
}

// MountRoutes registers auth routes. Only /me sits behind the gate; /register
// reads a bearer token when one is sent so administrators can grant roles.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.auth.OptionalAuth).Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.With(h.auth.RequireAuth).Get("/me", h.handleMe)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.logFailure("register", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, user, "user registered")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.logFailure("login", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, res, "")
}

type meResponse struct {
	Claim          Claim                    `json:"claim"`
	Permissions    []rbac.Permission        `json:"permissions"`
	AllowedActions map[rbac.Permission]bool `json:"allowed_actions"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	claim, ok := ClaimFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, ErrInvalidCredential)
		return
	}
	httpx.OK(w, http.StatusOK, meResponse{
		Claim:          claim,
		Permissions:    rbac.PermissionsFor(claim.Role),
		AllowedActions: rbac.AllowedActions(claim.Role),
	}, "")
}

func (h *Handler) logFailure(op string, err error) {
	if httpx.IsClientError(err) {
		h.logger.Debug("auth "+op+" rejected", slog.Any("error", err))
		return
	}
	h.logger.Error("auth "+op+" failed", slog.Any("error", err))
}
