// Package analytics serves the cached report and dashboard read models.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/cache"
)

// Service coordinates report queries with the cache layer.
type Service struct {
	repo  Repository
	cache *cache.Versioned
}

// NewService wires a Repository with a cache helper. A nil cache disables
// caching.
func NewService(repo Repository, c *cache.Versioned) *Service {
	return &Service{repo: repo, cache: c}
}

// Products returns the product report.
func (s *Service) Products(ctx context.Context) ([]ProductRow, error) {
	var out []ProductRow
	err := s.fetch(ctx, &out, func(ctx context.Context) (any, error) {
		return s.repo.Products(ctx)
	}, "reports", string(KindProducts))
	return out, err
}

// Costs returns the cost report.
func (s *Service) Costs(ctx context.Context) ([]CostRow, error) {
	var out []CostRow
	err := s.fetch(ctx, &out, func(ctx context.Context) (any, error) {
		return s.repo.Costs(ctx)
	}, "reports", string(KindCosts))
	return out, err
}

// Customers returns the customer report.
func (s *Service) Customers(ctx context.Context) ([]CustomerRow, error) {
	var out []CustomerRow
	err := s.fetch(ctx, &out, func(ctx context.Context) (any, error) {
		return s.repo.Customers(ctx)
	}, "reports", string(KindCustomers))
	return out, err
}

// Metrics returns the dashboard counters.
func (s *Service) Metrics(ctx context.Context) (DashboardMetrics, error) {
	var out DashboardMetrics
	err := s.fetch(ctx, &out, func(ctx context.Context) (any, error) {
		return s.repo.Metrics(ctx)
	}, "dashboard", "metrics")
	return out, err
}

// Report returns the rows of kind as a JSON-friendly value.
func (s *Service) Report(ctx context.Context, kind Kind) (any, error) {
	switch kind {
	case KindProducts:
		return s.Products(ctx)
	case KindCosts:
		return s.Costs(ctx)
	case KindCustomers:
		return s.Customers(ctx)
	}
	return nil, fmt.Errorf("analytics: unknown report %q", kind)
}

func (s *Service) fetch(ctx context.Context, dest any, loader cache.Loader, parts ...string) error {
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		// Version lookup failed; bypass Redis for this request.
		var direct *cache.Versioned
		return direct.FetchJSON(ctx, strings.Join(parts, ":"), dest, loader)
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}
