package costs

const monthLayout = "2006-01-02"

// CreateRequest is the body of POST /api/product-costs.
type CreateRequest struct {
	ProductID int64    `json:"product_id" validate:"required,gt=0"`
	Month     string   `json:"month" validate:"required,datetime=2006-01-02"`
	UnitCost  *float64 `json:"unit_cost" validate:"required,gte=0"`
}

// UpdateRequest is the body of PUT /api/product-costs/{id}.
type UpdateRequest struct {
	UnitCost *float64 `json:"unit_cost" validate:"required,gt=0"`
	Month    string   `json:"month,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
