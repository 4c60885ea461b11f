// Package costs tracks the unit cost of each product per calendar month.
package costs

import "time"

// ProductCost is one month of cost for one product.
type ProductCost struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	ProductCode string    `json:"product_code,omitempty"`
	Month       time.Time `json:"month"`
	UnitCost    float64   `json:"unit_cost"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerID implements the ownership contract used by access checks.
func (c ProductCost) OwnerID() string { return c.CreatedBy }
