package records

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

const recordNotFoundMsg = "medical record not found"

// Record is the metadata row for an uploaded medical record file. The file
// body lives in object storage under FileKey.
type Record struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	FileKey     string    `json:"-"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Store provides database operations for medical record metadata.
type Store interface {
	Create(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Record, error)
}

// Repository is the pgx-backed record metadata store.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO medical_records (id, user_id, file_key, file_name, content_type, size_bytes, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		record.ID, record.UserID, record.FileKey, record.FileName,
		record.ContentType, record.SizeBytes, record.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	var rec Record
	query := `
		SELECT id, user_id, file_key, file_name, content_type, size_bytes, uploaded_at
		FROM medical_records WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.FileKey, &rec.FileName,
		&rec.ContentType, &rec.SizeBytes, &rec.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(recordNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &rec, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	query := `
		SELECT id, user_id, file_key, file_name, content_type, size_bytes, uploaded_at
		FROM medical_records
		WHERE user_id = $1
		ORDER BY uploaded_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.FileKey, &rec.FileName,
			&rec.ContentType, &rec.SizeBytes, &rec.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medical record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read medical records: %w", err)
	}

	return out, nil
}
