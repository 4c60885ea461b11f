package analytics

import "time"

// Kind names a report.
type Kind string

const (
	KindProducts  Kind = "products"
	KindCosts     Kind = "costs"
	KindCustomers Kind = "customers"
)

// ParseKind accepts the report names served under /api/reports.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(raw) {
	case KindProducts, KindCosts, KindCustomers:
		return Kind(raw), true
	}
	return "", false
}

// ProductRow is one line of the product report.
type ProductRow struct {
	ID                 int64     `json:"id"`
	ProductName        string    `json:"product_name"`
	ProductCode        string    `json:"product_code"`
	ProductCategory    string    `json:"product_category"`
	Unit               string    `json:"unit"`
	CriticalStockLevel float64   `json:"critical_stock_level"`
	CurrentStock       float64   `json:"current_stock"`
	Brand              string    `json:"brand"`
	CreatedAt          time.Time `json:"created_at"`
}

// CostRow is one line of the cost report.
type CostRow struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	ProductCode string    `json:"product_code"`
	Month       time.Time `json:"month"`
	UnitCost    float64   `json:"unit_cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerRow is one line of the customer report.
type CustomerRow struct {
	ID                int64   `json:"id"`
	CustomerName      string  `json:"customer_name"`
	CustomerCode      string  `json:"customer_code"`
	Address           string  `json:"address"`
	CityOrDistrict    string  `json:"city_or_district"`
	SalesRep          string  `json:"sales_rep"`
	Country           string  `json:"country"`
	RegionOrState     string  `json:"region_or_state"`
	TelephoneNumber   string  `json:"telephone_number"`
	Email             string  `json:"email"`
	ContactPerson     string  `json:"contact_person"`
	PaymentTermsLimit float64 `json:"payment_terms_limit"`
	BalanceRiskLimit  float64 `json:"balance_risk_limit"`
}

// DashboardMetrics are the headline counters of the dashboard.
type DashboardMetrics struct {
	TotalProducts         int `json:"total_products"`
	CriticalStockProducts int `json:"critical_stock_products"`
	TotalCustomers        int `json:"total_customers"`
	AtRiskCustomers       int `json:"at_risk_customers"`
}
