package products

import (
	"strings"

	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

func (req ProductRequest) toProduct() (Product, error) {
	if err := shared.Validate(req); err != nil {
		return Product{}, err
	}
	p := Product{
		ProductName:        strings.TrimSpace(req.ProductName),
		ProductCode:        strings.ToUpper(strings.TrimSpace(req.ProductCode)),
		ProductCategory:    strings.TrimSpace(req.ProductCategory),
		Unit:               strings.TrimSpace(req.Unit),
		CriticalStockLevel: *req.CriticalStockLevel,
		Brand:              strings.TrimSpace(req.Brand),
		Description:        strings.TrimSpace(req.Description),
		SalesPrice:         req.SalesPrice,
	}
	if req.CurrentStock != nil {
		p.CurrentStock = *req.CurrentStock
	}
	return p, nil
}
