package customers

import "strings"

// CustomerRequest is the body of create and update calls.
type CustomerRequest struct {
	CustomerName      string   `json:"customer_name" validate:"notblank,max=200"`
	CustomerCode      string   `json:"customer_code" validate:"notblank,max=50"`
	Email             string   `json:"email" validate:"required,email,max=200"`
	Address           string   `json:"address,omitempty" validate:"max=500"`
	CityOrDistrict    string   `json:"city_or_district,omitempty" validate:"max=100"`
	SalesRep          string   `json:"sales_rep,omitempty" validate:"max=100"`
	Country           string   `json:"country,omitempty" validate:"max=100"`
	RegionOrState     string   `json:"region_or_state,omitempty" validate:"max=100"`
	TelephoneNumber   string   `json:"telephone_number,omitempty" validate:"omitempty,phone,max=30"`
	ContactPerson     string   `json:"contact_person,omitempty" validate:"max=100"`
	PaymentTermsLimit *float64 `json:"payment_terms_limit,omitempty" validate:"omitempty,gte=0"`
	BalanceRiskLimit  *float64 `json:"balance_risk_limit,omitempty" validate:"omitempty,gte=0"`
}

func (req CustomerRequest) toCustomer() Customer {
	c := Customer{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerCode:    strings.ToUpper(strings.TrimSpace(req.CustomerCode)),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Address:         strings.TrimSpace(req.Address),
		CityOrDistrict:  strings.TrimSpace(req.CityOrDistrict),
		SalesRep:        strings.TrimSpace(req.SalesRep),
		Country:         strings.TrimSpace(req.Country),
		RegionOrState:   strings.TrimSpace(req.RegionOrState),
		TelephoneNumber: strings.TrimSpace(req.TelephoneNumber),
		ContactPerson:   strings.TrimSpace(req.ContactPerson),
	}
	if req.PaymentTermsLimit != nil {
		c.PaymentTermsLimit = *req.PaymentTermsLimit
	}
	if req.BalanceRiskLimit != nil {
		c.BalanceRiskLimit = *req.BalanceRiskLimit
	}
	return c
}
