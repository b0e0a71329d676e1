package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userNotFoundMsg = "user not found"

// User is the directory view of an account. The password hash never leaves
// the auth module.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Gender    *string   `json:"gender,omitempty"`
	DOB       *string   `json:"dob,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateParams contains the directory fields a user may change about
// themselves. Email, role and credentials are not updatable here.
type UpdateParams struct {
	Name   *string
	Phone  *string
	Gender *string
	DOB    *string
}

// Store provides read and profile-update access to the user directory.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, role string) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*User, error)
}

const userColumns = `id, name, email, phone, role, gender, to_char(dob, 'YYYY-MM-DD'), created_at`

// Repository is the pgx-backed user directory.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *Repository) getOne(ctx context.Context, query string, arg interface{}) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Gender, &u.DOB, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(userNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// List returns users ordered by name, optionally filtered by role.
func (r *Repository) List(ctx context.Context, role string) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []interface{}{}
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Gender, &u.DOB, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return out, nil
}

// Update patches the user's directory profile and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*User, error) {
	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			gender = COALESCE($4, gender),
			dob = COALESCE($5::date, dob)
		WHERE id = $1
		RETURNING ` + userColumns

	var u User
	err := r.pool.QueryRow(ctx, query, id, p.Name, p.Phone, p.Gender, p.DOB).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Gender, &u.DOB, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(userNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &u, nil
}
