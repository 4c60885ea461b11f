package customers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, rbac: rbac}
}

type listResponse struct {
	Items      []Customer        `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, page, err := h.service.List(r.Context(), shared.ParseListParams(r))
	if err != nil {
		h.fail(w, "list customers failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, listResponse{Items: items, Pagination: page}, "")
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	customer, err := h.service.Get(r.Context(), id, h.ownership(r.Context(), rbac.ActionView))
	if err != nil {
		h.fail(w, "get customer failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, customer, "")
}

func (h *Handler) BySalesRep(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.BySalesRep(r.Context())
	if err != nil {
		h.fail(w, "customers by sales rep failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, groups, "")
}

func (h *Handler) RiskAnalysis(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.RiskAnalysis(r.Context())
	if err != nil {
		h.fail(w, "customer risk analysis failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, entries, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), rbac.ActorID(r.Context()), req)
	if err != nil {
		h.fail(w, "create customer failed", err)
		return
	}
	httpx.OK(w, http.StatusCreated, created, "customer created")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req CustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx := r.Context()
	updated, err := h.service.Update(ctx, rbac.ActorID(ctx), id, req, h.ownership(ctx, rbac.ActionUpdate))
	if err != nil {
		h.fail(w, "update customer failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, updated, "customer updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx := r.Context()
	if err := h.service.Delete(ctx, rbac.ActorID(ctx), id, h.ownership(ctx, rbac.ActionDelete)); err != nil {
		h.fail(w, "delete customer failed", err)
		return
	}
	httpx.OK(w, http.StatusOK, nil, "customer deleted")
}

func (h *Handler) ownership(ctx context.Context, action rbac.Action) Authorizer {
	return func(ownerID string) error {
		return h.rbac.AuthorizeResource(ctx, ownerID, action)
	}
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	if !httpx.IsClientError(err) {
		h.logger.Error(msg, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
