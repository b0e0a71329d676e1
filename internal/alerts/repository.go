package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	opCreate = "alerts.repository.create"
	opList   = "alerts.repository.list"

	errUserIDRequired = "userId is required"
)

// Alert is an in-app notification shown on the patient dashboard.
type Alert struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for persisting an alert.
type CreateParams struct {
	UserID   uuid.UUID
	Title    string
	Message  string
	Severity string
}

// Store provides database operations for alerts.
type Store interface {
	Create(ctx context.Context, p CreateParams) (Alert, error)
	List(ctx context.Context, userID uuid.UUID) ([]Alert, error)
}

// Repository is the pgx-backed alert store.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, p CreateParams) (Alert, error) {
	if p.UserID == uuid.Nil {
		return Alert{}, apperr.Validation(errUserIDRequired).WithOp(opCreate)
	}
	if p.Title == "" || p.Message == "" {
		return Alert{}, apperr.Validation("title and message are required").WithOp(opCreate)
	}

	severity := p.Severity
	if severity == "" {
		severity = SeverityInfo
	}

	var a Alert
	err := r.pool.QueryRow(ctx, `
		INSERT INTO alerts (user_id, title, message, severity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, message, severity, created_at
	`, p.UserID, p.Title, p.Message, severity).Scan(
		&a.ID, &a.UserID, &a.Title, &a.Message, &a.Severity, &a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Alert{}, apperr.Validation("invalid userId").WithOp(opCreate)
		}
		return Alert{}, apperr.Internal(fmt.Sprintf("create alert failed: %v", err)).WithOp(opCreate)
	}

	return a, nil
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]Alert, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation(errUserIDRequired).WithOp(opList)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, message, severity, created_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, apperr.Internal(fmt.Sprintf("list alerts query failed: %v", err)).WithOp(opList)
	}
	defer rows.Close()

	out := []Alert{}
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Message, &a.Severity, &a.CreatedAt); err != nil {
			return nil, apperr.Internal(fmt.Sprintf("scan alert failed: %v", err)).WithOp(opList)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Sprintf("read alerts failed: %v", err)).WithOp(opList)
	}

	return out, nil
}
