package products

import (
	"time"
)

// Product represents a stocked item.
type Product struct {
	ID                 int64     `json:"id"`
	ProductName        string    `json:"product_name"`
	ProductCode        string    `json:"product_code"`
	ProductCategory    string    `json:"product_category"`
	Unit               string    `json:"unit"`
	CriticalStockLevel float64   `json:"critical_stock_level"`
	CurrentStock       float64   `json:"current_stock"`
	Brand              string    `json:"brand"`
	Description        string    `json:"description,omitempty"`
	SalesPrice         *float64  `json:"sales_price,omitempty"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BelowCritical reports whether stock has fallen to the critical level.
func (p Product) BelowCritical() bool {
	return p.CurrentStock <= p.CriticalStockLevel
}
