package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Account is the credentials-bearing user row. Only the auth module ever
// reads or writes password_hash.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Role         string
	Gender       *string
	DOB          *string
	CreatedAt    time.Time
}

// Store provides account persistence for registration and login.
type Store interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// Repository is the pgx-backed account store.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// Create inserts a new account. A duplicate email maps to a conflict error.
func (r *Repository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, phone, role, gender, dob, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9)`

	_, err := r.pool.Exec(ctx, query,
		account.ID, account.Name, account.Email, account.PasswordHash,
		account.Phone, account.Role, account.Gender, account.DOB, account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("an account with this email already exists")
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by email for credential verification.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	query := `
		SELECT id, name, email, password_hash, phone, role, gender,
			to_char(dob, 'YYYY-MM-DD'), created_at
		FROM users WHERE email = $1`

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Phone, &a.Role,
		&a.Gender, &a.DOB, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &a, nil
}
