package assessments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Assessment is a self-reported health assessment result.
type Assessment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Score     int       `json:"score"`
	Result    string    `json:"result"`
	Details   *string   `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store provides database operations for health assessments.
type Store interface {
	Create(ctx context.Context, a *Assessment) error
	GetMostRecent(ctx context.Context, userID uuid.UUID) (*Assessment, error)
}

// Repository is the pgx-backed assessment store.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, a *Assessment) error {
	query := `
		INSERT INTO health_assessments (id, user_id, score, result, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query, a.ID, a.UserID, a.Score, a.Result, a.Details, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create health assessment: %w", err)
	}
	return nil
}

// GetMostRecent returns the user's latest assessment, nil when none exists.
func (r *Repository) GetMostRecent(ctx context.Context, userID uuid.UUID) (*Assessment, error) {
	var a Assessment
	query := `
		SELECT id, user_id, score, result, details, created_at
		FROM health_assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&a.ID, &a.UserID, &a.Score, &a.Result, &a.Details, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recent assessment: %w", err)
	}
	return &a, nil
}
