package customers

import (
	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.ViewCustomer))
		r.Get("/", h.List)
		r.Get("/by-sales-rep", h.BySalesRep)
		r.Get("/risk-analysis", h.RiskAnalysis)
		r.Get("/{id}", h.Show)
	})
	r.With(h.rbac.Require(rbac.CreateCustomer)).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.UpdateCustomer)).Put("/{id}", h.Update)
	r.With(h.rbac.Require(rbac.DeleteCustomer)).Delete("/{id}", h.Delete)
}
