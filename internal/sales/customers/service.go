package customers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

// Authorizer approves an action on a customer owned by ownerID.
type Authorizer func(ownerID string) error

type Service struct {
	repo  Repository
	hooks shared.MutationHooks
}

func NewService(repo Repository, hooks shared.MutationHooks) *Service {
	return &Service{repo: repo, hooks: hooks}
}

func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Customer, shared.Pagination, error) {
	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, shared.Pagination{}, fmt.Errorf("list customers: %w", err)
	}
	return items, shared.NewPagination(params.Page, params.PerPage, total), nil
}

// Get loads a customer and runs authorize against its owner.
func (s *Service) Get(ctx context.Context, id int64, authorize Authorizer) (Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}
	if err := authorize(c.CreatedBy); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (s *Service) BySalesRep(ctx context.Context) ([]SalesRepGroup, error) {
	return s.repo.GroupBySalesRep(ctx)
}

func (s *Service) RiskAnalysis(ctx context.Context) ([]RiskEntry, error) {
	return s.repo.RiskAnalysis(ctx)
}

func (s *Service) Create(ctx context.Context, actorID string, req CustomerRequest) (Customer, error) {
	if err := shared.Validate(req); err != nil {
		return Customer{}, err
	}
	customer := req.toCustomer()
	if err := s.ensureCodeFree(ctx, customer.CustomerCode, 0); err != nil {
		return Customer{}, err
	}
	customer.CreatedBy = actorID
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return Customer{}, duplicateCode(err, customer.CustomerCode)
	}
	s.after(ctx, actorID, "create", created.ID)
	return created, nil
}

// Update replaces a customer's fields. Ownership is checked against the
// stored row before the body is validated.
func (s *Service) Update(ctx context.Context, actorID string, id int64, req CustomerRequest, authorize Authorizer) (Customer, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}
	if err := authorize(current.CreatedBy); err != nil {
		return Customer{}, err
	}
	if err := shared.Validate(req); err != nil {
		return Customer{}, err
	}
	customer := req.toCustomer()
	if err := s.ensureCodeFree(ctx, customer.CustomerCode, id); err != nil {
		return Customer{}, err
	}
	updated, err := s.repo.Update(ctx, id, customer)
	if err != nil {
		return Customer{}, duplicateCode(err, customer.CustomerCode)
	}
	s.after(ctx, actorID, "update", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actorID string, id int64, authorize Authorizer) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(current.CreatedBy); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.after(ctx, actorID, "delete", id)
	return nil
}

func (s *Service) ensureCodeFree(ctx context.Context, code string, selfID int64) error {
	existing, err := s.repo.GetByCode(ctx, code)
	switch {
	case errors.Is(err, httpx.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check existing customer: %w", err)
	case existing.ID != selfID:
		return fmt.Errorf("%w: customer code %s already exists", httpx.ErrDuplicate, code)
	}
	return nil
}

func (s *Service) after(ctx context.Context, actorID, action string, id int64) {
	s.hooks.After(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "customer",
		EntityID: strconv.FormatInt(id, 10),
	})
}

func duplicateCode(err error, code string) error {
	if errors.Is(err, httpx.ErrDuplicate) {
		return fmt.Errorf("%w: customer code %s already exists", httpx.ErrDuplicate, code)
	}
	return err
}
