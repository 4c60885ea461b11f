package products

// ProductRequest is the body of create and update calls.
type ProductRequest struct {
	ProductName        string   `json:"product_name" validate:"notblank,max=200"`
	ProductCode        string   `json:"product_code" validate:"notblank,max=50"`
	ProductCategory    string   `json:"product_category" validate:"notblank,max=100"`
	Unit               string   `json:"unit" validate:"notblank,max=20"`
	CriticalStockLevel *float64 `json:"critical_stock_level" validate:"required,gt=0"`
	Brand              string   `json:"brand" validate:"notblank,max=100"`
	CurrentStock       *float64 `json:"current_stock,omitempty" validate:"omitempty,gte=0"`
	Description        string   `json:"description,omitempty" validate:"max=2000"`
	SalesPrice         *float64 `json:"sales_price,omitempty" validate:"omitempty,gte=0"`
}
