package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/db"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	db db.DBTX
}

// NewRepository constructs a repository.
func NewRepository(conn db.DBTX) *Repository {
	return &Repository{db: conn}
}

const userColumns = `id::text, email, name, role, password_hash, created_at`

// ListUsers returns all users ordered by creation time.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// FindByID fetches a user by id.
func (r *Repository) FindByID(ctx context.Context, id string) (User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id::text = $1`, id))
	if err != nil {
		return User{}, db.Classify(err, "user")
	}
	return u, nil
}

// FindByEmail fetches a user by email, case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`,
		strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		return User{}, db.Classify(err, "user")
	}
	return u, nil
}

// Create inserts a user and returns the stored row.
func (r *Repository) Create(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users (id, email, name, role, password_hash)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+userColumns, u.ID, u.Email, u.Name, string(u.Role), u.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		return User{}, db.Classify(err, "user")
	}
	return created, nil
}

// UpdateRole changes the stored role of a user.
func (r *Repository) UpdateRole(ctx context.Context, id string, role rbac.Role) (User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET role = $2 WHERE id::text = $1 RETURNING `+userColumns, id, string(role))
	u, err := scanUser(row)
	if err != nil {
		return User{}, db.Classify(err, "user")
	}
	return u, nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u    User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return User{}, err
	}
	u.Role = rbac.Role(role)
	return u, nil
}

var _ RepositoryPort = (*Repository)(nil)
