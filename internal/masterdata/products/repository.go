package products

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/db"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
)

// Repository persists products.
type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Product, int, error)
	ListCritical(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) (Product, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const productColumns = `id, product_name, product_code, product_category, unit, critical_stock_level,
current_stock, brand, COALESCE(description, ''), sales_price, COALESCE(created_by, ''), created_at, updated_at`

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Product, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (product_name ILIKE $` + n + ` OR product_code ILIKE $` + n + ` OR brand ILIKE $` + n + `)`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at DESC, id DESC`
	args = append(args, params.PerPage, params.Offset())
	query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	products, err := collect(rows)
	return products, total, err
}

func (r *repository) ListCritical(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products
WHERE current_stock <= critical_stock_level
ORDER BY critical_stock_level ASC, product_name ASC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return Product{}, db.Classify(err, "product")
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO products (
	product_name, product_code, product_category, unit, critical_stock_level,
	current_stock, brand, description, sales_price, created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, NOW(), NOW())
RETURNING `+productColumns,
		p.ProductName, p.ProductCode, p.ProductCategory, p.Unit, p.CriticalStockLevel,
		p.CurrentStock, p.Brand, p.Description, p.SalesPrice, p.CreatedBy)
	created, err := scanProduct(row)
	if err != nil {
		return Product{}, db.Classify(err, "product")
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Product) (Product, error) {
	row := r.db.QueryRow(ctx, `UPDATE products SET
	product_name = $2, product_code = $3, product_category = $4, unit = $5,
	critical_stock_level = $6, current_stock = $7, brand = $8,
	description = NULLIF($9, ''), sales_price = $10, updated_at = NOW()
WHERE id = $1
RETURNING `+productColumns,
		id, p.ProductName, p.ProductCode, p.ProductCategory, p.Unit,
		p.CriticalStockLevel, p.CurrentStock, p.Brand, p.Description, p.SalesPrice)
	updated, err := scanProduct(row)
	if err != nil {
		return Product{}, db.Classify(err, "product")
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err, "product")
	}
	if tag.RowsAffected() == 0 {
		return db.Classify(pgx.ErrNoRows, "product")
	}
	return nil
}

func collect(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.ProductName, &p.ProductCode, &p.ProductCategory, &p.Unit,
		&p.CriticalStockLevel, &p.CurrentStock, &p.Brand, &p.Description, &p.SalesPrice,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
