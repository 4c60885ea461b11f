package customers

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/db"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

// Repository persists customers.
type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Customer, int, error)
	Get(ctx context.Context, id int64) (Customer, error)
	GetByCode(ctx context.Context, code string) (Customer, error)
	GroupBySalesRep(ctx context.Context) ([]SalesRepGroup, error)
	RiskAnalysis(ctx context.Context) ([]RiskEntry, error)
	Create(ctx context.Context, c Customer) (Customer, error)
	Update(ctx context.Context, id int64, c Customer) (Customer, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const customerColumns = `id, customer_name, customer_code, email, COALESCE(address, ''), COALESCE(city_or_district, ''),
COALESCE(sales_rep, ''), COALESCE(country, ''), COALESCE(region_or_state, ''), COALESCE(telephone_number, ''),
COALESCE(contact_person, ''), payment_terms_limit, balance_risk_limit, COALESCE(created_by, ''), created_at, updated_at`

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Customer, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (customer_name ILIKE $` + n + ` OR customer_code ILIKE $` + n + ` OR email ILIKE $` + n + `)`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, params.PerPage, params.Offset())
	query := `SELECT ` + customerColumns + ` FROM customers` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		return Customer{}, db.Classify(err, "customer")
	}
	return c, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_code = $1`, code))
	if err != nil {
		return Customer{}, db.Classify(err, "customer")
	}
	return c, nil
}

func (r *repository) GroupBySalesRep(ctx context.Context) ([]SalesRepGroup, error) {
	rows, err := r.db.Query(ctx, `SELECT sales_rep, COUNT(*), ARRAY_AGG(customer_name ORDER BY customer_name)
FROM customers
WHERE sales_rep IS NOT NULL AND sales_rep <> ''
GROUP BY sales_rep
ORDER BY sales_rep`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SalesRepGroup{}
	for rows.Next() {
		var g SalesRepGroup
		if err := rows.Scan(&g.SalesRep, &g.CustomerCount, &g.Customers); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *repository) RiskAnalysis(ctx context.Context) ([]RiskEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, customer_name, customer_code, balance_risk_limit, payment_terms_limit, COALESCE(sales_rep, '')
FROM customers
WHERE balance_risk_limit > 0
ORDER BY balance_risk_limit DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RiskEntry{}
	for rows.Next() {
		var e RiskEntry
		if err := rows.Scan(&e.ID, &e.CustomerName, &e.CustomerCode, &e.BalanceRiskLimit, &e.PaymentTermsLimit, &e.SalesRep); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Customer) (Customer, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO customers (
	customer_name, customer_code, email, address, city_or_district, sales_rep, country,
	region_or_state, telephone_number, contact_person, payment_terms_limit, balance_risk_limit,
	created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
RETURNING `+customerColumns,
		c.CustomerName, c.CustomerCode, c.Email, c.Address, c.CityOrDistrict, c.SalesRep, c.Country,
		c.RegionOrState, c.TelephoneNumber, c.ContactPerson, c.PaymentTermsLimit, c.BalanceRiskLimit, c.CreatedBy)
	created, err := scanCustomer(row)
	if err != nil {
		return Customer{}, db.Classify(err, "customer")
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Customer) (Customer, error) {
	row := r.db.QueryRow(ctx, `UPDATE customers SET
	customer_name = $2, customer_code = $3, email = $4, address = $5, city_or_district = $6,
	sales_rep = $7, country = $8, region_or_state = $9, telephone_number = $10,
	contact_person = $11, payment_terms_limit = $12, balance_risk_limit = $13, updated_at = NOW()
WHERE id = $1
RETURNING `+customerColumns,
		id, c.CustomerName, c.CustomerCode, c.Email, c.Address, c.CityOrDistrict, c.SalesRep, c.Country,
		c.RegionOrState, c.TelephoneNumber, c.ContactPerson, c.PaymentTermsLimit, c.BalanceRiskLimit)
	updated, err := scanCustomer(row)
	if err != nil {
		return Customer{}, db.Classify(err, "customer")
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err, "customer")
	}
	if tag.RowsAffected() == 0 {
		return db.Classify(pgx.ErrNoRows, "customer")
	}
	return nil
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.CustomerName, &c.CustomerCode, &c.Email, &c.Address, &c.CityOrDistrict,
		&c.SalesRep, &c.Country, &c.RegionOrState, &c.TelephoneNumber, &c.ContactPerson,
		&c.PaymentTermsLimit, &c.BalanceRiskLimit, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
