package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

// Service holds product business rules.
type Service struct {
	repo  Repository
	hooks shared.MutationHooks
}

// NewService constructs a Service.
func NewService(repo Repository, hooks shared.MutationHooks) *Service {
	return &Service{repo: repo, hooks: hooks}
}

// List returns one page of products, newest first.
func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Product, shared.Pagination, error) {
	products, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return products, shared.NewPagination(params.Page, params.PerPage, total), nil
}

// CriticalStock lists products at or below their critical level.
func (s *Service) CriticalStock(ctx context.Context) ([]Product, error) {
	return s.repo.ListCritical(ctx)
}

// Get fetches one product.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a product owned by actorID.
func (s *Service) Create(ctx context.Context, actorID string, req ProductRequest) (Product, error) {
	product, err := req.toProduct()
	if err != nil {
		return Product{}, err
	}
	product.CreatedBy = actorID
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return Product{}, duplicateCode(err, product.ProductCode)
	}
	s.hooks.After(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "create",
		Entity:   "product",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"product_code": created.ProductCode},
	})
	return created, nil
}

// Update replaces the editable fields of a product.
func (s *Service) Update(ctx context.Context, actorID string, id int64, req ProductRequest) (Product, error) {
	product, err := req.toProduct()
	if err != nil {
		return Product{}, err
	}
	updated, err := s.repo.Update(ctx, id, product)
	if err != nil {
		return Product{}, duplicateCode(err, product.ProductCode)
	}
	s.hooks.After(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "update",
		Entity:   "product",
		EntityID: strconv.FormatInt(id, 10),
	})
	return updated, nil
}

// Delete removes a product. Its cost history goes with it.
func (s *Service) Delete(ctx context.Context, actorID string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hooks.After(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   "delete",
		Entity:   "product",
		EntityID: strconv.FormatInt(id, 10),
	})
	return nil
}

func duplicateCode(err error, code string) error {
	if errors.Is(err, httpx.ErrDuplicate) {
		return fmt.Errorf("%w: product code %s already exists", httpx.ErrDuplicate, code)
	}
	return err
}
