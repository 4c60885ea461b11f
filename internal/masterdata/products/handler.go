package products

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

// Handler serves /api/products.
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

// MountRoutes registers product routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ViewProduct)).Get("/", h.List)
	r.With(h.rbac.Require(rbac.ViewProduct)).Get("/critical-stock", h.CriticalStock)
	r.With(h.rbac.Require(rbac.ViewProduct)).Get("/{id}", h.Show)
	r.With(h.rbac.Require(rbac.CreateProduct)).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.UpdateProduct)).Put("/{id}", h.Update)
	r.With(h.rbac.Require(rbac.DeleteProduct)).Delete("/{id}", h.Delete)
}

type listResponse struct {
	Items      []Product         `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, page, err := h.service.List(r.Context(), shared.ParseListParams(r))
	if err != nil {
		h.fail(w, "list products failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, listResponse{Items: products, Pagination: page}, "")
}

func (h *Handler) CriticalStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.CriticalStock(r.Context())
	if err != nil {
		h.fail(w, "list critical stock failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, products, "")
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get product failed", err, slog.Int64("id", id))
		return
	}
	httpx.OK(w, http.StatusOK, product, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), rbac.ActorID(r.Context()), req)
	if err != nil {
		h.fail(w, "create product failed", err)
		return
	}
	httpx.OK(w, http.StatusCreated, created, "product created")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), rbac.ActorID(r.Context()), id, req)
	if err != nil {
		h.fail(w, "update product failed", err, slog.Int64("id", id))
		return
	}
	httpx.OK(w, http.StatusOK, updated, "product updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), rbac.ActorID(r.Context()), id); err != nil {
		h.fail(w, "delete product failed", err, slog.Int64("id", id))
		return
	}
	httpx.OK(w, http.StatusOK, nil, "product deleted")
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error, attrs ...any) {
	if !httpx.IsClientError(err) {
		h.logger.Error(msg, append([]any{slog.Any("error", err)}, attrs...)...)
	}
	httpx.RespondError(w, err)
}
