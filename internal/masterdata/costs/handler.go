package costs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// Handler serves /api/product-costs.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers cost routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ViewCost)).Get("/", h.List)
	r.With(h.rbac.Require(rbac.ViewCost)).Get("/by-product/{productID}", h.History)
	r.With(h.rbac.Require(rbac.ViewCost)).Get("/{id}", h.Show)
	r.With(h.rbac.Require(rbac.CreateCost)).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.UpdateCost)).Put("/{id}", h.Update)
	r.With(h.rbac.Require(rbac.DeleteCost)).Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	costs, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list product costs failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, costs, "")
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	productID, err := httpx.ParseID(chi.URLParam(r, "productID"), "product_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	costs, err := h.service.History(r.Context(), productID)
	if err != nil {
		h.fail(w, "product cost history failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, costs, "")
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	cost, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get product cost failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, cost, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), rbac.ActorID(r.Context()), req)
	if err != nil {
		h.fail(w, "create product cost failed", err)
		return
	}
	httpx.OK(w, http.StatusCreated, created, "product cost created")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx := r.Context()
	updated, err := h.service.Update(ctx, rbac.ActorID(ctx), id, req, func(owner string) error {
		return h.rbac.AuthorizeResource(ctx, owner, rbac.ActionUpdate)
	})
	if err != nil {
		h.fail(w, "update product cost failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, updated, "product cost updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx := r.Context()
	err = h.service.Delete(ctx, rbac.ActorID(ctx), id, func(owner string) error {
		return h.rbac.AuthorizeResource(ctx, owner, rbac.ActionDelete)
	})
	if err != nil {
		h.fail(w, "delete product cost failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, nil, "product cost deleted")
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	if !httpx.IsClientError(err) {
		h.logger.Error(msg, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
