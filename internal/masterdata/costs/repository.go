package costs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/db"
)

// Repository persists product costs.
type Repository interface {
	List(ctx context.Context) ([]ProductCost, error)
	ListByProduct(ctx context.Context, productID int64) ([]ProductCost, error)
	Get(ctx context.Context, id int64) (ProductCost, error)
	ProductExists(ctx context.Context, productID int64) (bool, error)
	Create(ctx context.Context, cost ProductCost) (ProductCost, error)
	Update(ctx context.Context, id int64, unitCost float64, month time.Time) (ProductCost, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const costSelect = `SELECT pc.id, pc.product_id, p.product_name, p.product_code, pc.month, pc.unit_cost,
COALESCE(pc.created_by, ''), pc.created_at, pc.updated_at
FROM product_costs pc
JOIN products p ON pc.product_id = p.id`

func (r *repository) List(ctx context.Context) ([]ProductCost, error) {
	rows, err := r.db.Query(ctx, costSelect+` ORDER BY pc.month DESC, p.product_name ASC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repository) ListByProduct(ctx context.Context, productID int64) ([]ProductCost, error) {
	rows, err := r.db.Query(ctx, costSelect+` WHERE pc.product_id = $1 ORDER BY pc.month ASC`, productID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (ProductCost, error) {
	c, err := scanCost(r.db.QueryRow(ctx, costSelect+` WHERE pc.id = $1`, id))
	if err != nil {
		return ProductCost{}, db.Classify(err, "product cost")
	}
	return c, nil
}

func (r *repository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, c ProductCost) (ProductCost, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO product_costs (product_id, month, unit_cost, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
RETURNING id`, c.ProductID, c.Month, c.UnitCost, c.CreatedBy).Scan(&id)
	if err != nil {
		return ProductCost{}, db.Classify(err, "product cost")
	}
	return r.Get(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int64, unitCost float64, month time.Time) (ProductCost, error) {
	tag, err := r.db.Exec(ctx, `UPDATE product_costs
SET unit_cost = $2, month = COALESCE($3, month), updated_at = NOW()
WHERE id = $1`, id, unitCost, nullableMonth(month))
	if err != nil {
		return ProductCost{}, db.Classify(err, "product cost")
	}
	if tag.RowsAffected() == 0 {
		return ProductCost{}, db.Classify(pgx.ErrNoRows, "product cost")
	}
	return r.Get(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_costs WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err, "product cost")
	}
	if tag.RowsAffected() == 0 {
		return db.Classify(pgx.ErrNoRows, "product cost")
	}
	return nil
}

func nullableMonth(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func collect(rows pgx.Rows) ([]ProductCost, error) {
	defer rows.Close()
	out := []ProductCost{}
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCost(row pgx.Row) (ProductCost, error) {
	var c ProductCost
	err := row.Scan(&c.ID, &c.ProductID, &c.ProductName, &c.ProductCode, &c.Month, &c.UnitCost,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
