package analytics

import (
	"context"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/db"
)

// Repository runs the report queries.
type Repository interface {
	Products(ctx context.Context) ([]ProductRow, error)
	Costs(ctx context.Context) ([]CostRow, error)
	Customers(ctx context.Context) ([]CustomerRow, error)
	Metrics(ctx context.Context) (DashboardMetrics, error)
}

type pgRepository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL repository.
func NewRepository(conn db.DBTX) Repository {
	return &pgRepository{db: conn}
}

func (r *pgRepository) Products(ctx context.Context) ([]ProductRow, error) {
	rows, err := r.db.Query(ctx, `SELECT id, product_name, product_code, product_category, unit,
critical_stock_level, current_stock, brand, created_at
FROM products
ORDER BY product_category, product_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ProductRow{}
	for rows.Next() {
		var p ProductRow
		if err := rows.Scan(&p.ID, &p.ProductName, &p.ProductCode, &p.ProductCategory, &p.Unit,
			&p.CriticalStockLevel, &p.CurrentStock, &p.Brand, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *pgRepository) Costs(ctx context.Context) ([]CostRow, error) {
	rows, err := r.db.Query(ctx, `SELECT pc.id, p.product_name, p.product_code, pc.month, pc.unit_cost, pc.created_at
FROM product_costs pc
JOIN products p ON pc.product_id = p.id
ORDER BY pc.month DESC, p.product_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CostRow{}
	for rows.Next() {
		var c CostRow
		if err := rows.Scan(&c.ID, &c.ProductName, &c.ProductCode, &c.Month, &c.UnitCost, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *pgRepository) Customers(ctx context.Context) ([]CustomerRow, error) {
	rows, err := r.db.Query(ctx, `SELECT id, customer_name, customer_code, COALESCE(address, ''), COALESCE(city_or_district, ''),
COALESCE(sales_rep, ''), COALESCE(country, ''), COALESCE(region_or_state, ''), COALESCE(telephone_number, ''),
email, COALESCE(contact_person, ''), payment_terms_limit, balance_risk_limit
FROM customers
ORDER BY sales_rep, customer_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CustomerRow{}
	for rows.Next() {
		var c CustomerRow
		if err := rows.Scan(&c.ID, &c.CustomerName, &c.CustomerCode, &c.Address, &c.CityOrDistrict,
			&c.SalesRep, &c.Country, &c.RegionOrState, &c.TelephoneNumber, &c.Email, &c.ContactPerson,
			&c.PaymentTermsLimit, &c.BalanceRiskLimit); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *pgRepository) Metrics(ctx context.Context) (DashboardMetrics, error) {
	var m DashboardMetrics
	err := r.db.QueryRow(ctx, `SELECT
	(SELECT COUNT(*) FROM products),
	(SELECT COUNT(*) FROM products WHERE current_stock <= critical_stock_level),
	(SELECT COUNT(*) FROM customers),
	(SELECT COUNT(*) FROM customers WHERE balance_risk_limit > 0)`).
		Scan(&m.TotalProducts, &m.CriticalStockProducts, &m.TotalCustomers, &m.AtRiskCustomers)
	return m, err
}
