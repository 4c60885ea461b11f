// Package customers manages the customer book and its sales-rep ownership.
package customers

import "time"

// Customer is a buying account. CreatedBy is the owning user.
type Customer struct {
	ID                int64     `json:"id"`
	CustomerName      string    `json:"customer_name"`
	CustomerCode      string    `json:"customer_code"`
	Email             string    `json:"email"`
	Address           string    `json:"address"`
	CityOrDistrict    string    `json:"city_or_district"`
	SalesRep          string    `json:"sales_rep"`
	Country           string    `json:"country"`
	RegionOrState     string    `json:"region_or_state"`
	TelephoneNumber   string    `json:"telephone_number"`
	ContactPerson     string    `json:"contact_person"`
	PaymentTermsLimit float64   `json:"payment_terms_limit"`
	BalanceRiskLimit  float64   `json:"balance_risk_limit"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AtRisk reports whether a balance risk limit has been set.
func (c Customer) AtRisk() bool { return c.BalanceRiskLimit > 0 }

// SalesRepGroup lists the customers handled by one sales rep.
type SalesRepGroup struct {
	SalesRep      string   `json:"sales_rep"`
	CustomerCount int      `json:"customer_count"`
	Customers     []string `json:"customers"`
}

// RiskEntry is one row of the risk analysis.
type RiskEntry struct {
	ID                int64   `json:"id"`
	CustomerName      string  `json:"customer_name"`
	CustomerCode      string  `json:"customer_code"`
	BalanceRiskLimit  float64 `json:"balance_risk_limit"`
	PaymentTermsLimit float64 `json:"payment_terms_limit"`
	SalesRep          string  `json:"sales_rep"`
}
