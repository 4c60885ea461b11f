package costs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

// Service holds product cost rules.
type Service struct {
	repo  Repository
	hooks shared.MutationHooks
}

// NewService constructs a Service.
func NewService(repo Repository, hooks shared.MutationHooks) *Service {
	return &Service{repo: repo, hooks: hooks}
}

// List returns every cost row, latest month first.
func (s *Service) List(ctx context.Context) ([]ProductCost, error) {
	return s.repo.List(ctx)
}

// History returns the cost history of one product, oldest month first.
func (s *Service) History(ctx context.Context, productID int64) ([]ProductCost, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// Get fetches one cost row.
func (s *Service) Get(ctx context.Context, id int64) (ProductCost, error) {
	return s.repo.Get(ctx, id)
}

// Create records the cost of a product for a month. A product has at most
// one cost per month.
func (s *Service) Create(ctx context.Context, actorID string, req CreateRequest) (ProductCost, error) {
	if err := shared.Validate(req); err != nil {
		return ProductCost{}, err
	}
	month, err := normalizeMonth(req.Month)
	if err != nil {
		return ProductCost{}, err
	}
	exists, err := s.repo.ProductExists(ctx, req.ProductID)
	if err != nil {
		return ProductCost{}, err
	}
	if !exists {
		return ProductCost{}, fmt.Errorf("product %d: %w", req.ProductID, httpx.ErrNotFound)
	}
	created, err := s.repo.Create(ctx, ProductCost{
		ProductID: req.ProductID,
		Month:     month,
		UnitCost:  *req.UnitCost,
		CreatedBy: actorID,
	})
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			return ProductCost{}, fmt.Errorf("%w: a cost entry already exists for product %d in %s",
				httpx.ErrDuplicate, req.ProductID, month.Format("2006-01"))
		}
		return ProductCost{}, err
	}
	s.after(ctx, actorID, "create", created.ID)
	return created, nil
}

// Update changes the unit cost and optionally the month. authorize is called
// with the stored row before the body is validated.
func (s *Service) Update(ctx context.Context, actorID string, id int64, req UpdateRequest, authorize func(ownerID string) error) (ProductCost, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return ProductCost{}, err
	}
	if err := authorize(current.OwnerID()); err != nil {
		return ProductCost{}, err
	}
	if err := shared.Validate(req); err != nil {
		return ProductCost{}, err
	}
	var month time.Time
	if req.Month != "" {
		m, err := normalizeMonth(req.Month)
		if err != nil {
			return ProductCost{}, err
		}
		month = m
	}
	updated, err := s.repo.Update(ctx, id, *req.UnitCost, month)
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			return ProductCost{}, fmt.Errorf("%w: a cost entry already exists for that month", httpx.ErrDuplicate)
		}
		return ProductCost{}, err
	}
	s.after(ctx, actorID, "update", id)
	return updated, nil
}

// Delete removes a cost row after authorize accepts its owner.
func (s *Service) Delete(ctx context.Context, actorID string, id int64, authorize func(ownerID string) error) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(current.OwnerID()); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.after(ctx, actorID, "delete", id)
	return nil
}

func (s *Service) after(ctx context.Context, actorID, action string, id int64) {
	s.hooks.After(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "product_cost",
		EntityID: strconv.FormatInt(id, 10),
	})
}
