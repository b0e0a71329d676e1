package availability

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

const slotNotFoundMsg = "availability slot not found"

// Slot is an open consultation slot published by a doctor.
type Slot struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctorId"`
	Date      string    `json:"date"`
	TimeOfDay string    `json:"time"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store provides database operations for availability slots.
type Store interface {
	Create(ctx context.Context, slot *Slot) error
	GetByID(ctx context.Context, id uuid.UUID) (*Slot, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]Slot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository is the pgx-backed slot store.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, slot *Slot) error {
	query := `
		INSERT INTO availability_slots (id, doctor_id, date, time_of_day, notes, created_at)
		VALUES ($1, $2, $3::date, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		slot.ID, slot.DoctorID, slot.Date, slot.TimeOfDay, slot.Notes, slot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create availability slot: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	var s Slot
	query := `
		SELECT id, doctor_id, to_char(date, 'YYYY-MM-DD'), time_of_day, notes, created_at
		FROM availability_slots WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.DoctorID, &s.Date, &s.TimeOfDay, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(slotNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get availability slot: %w", err)
	}
	return &s, nil
}

func (r *Repository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]Slot, error) {
	query := `
		SELECT id, doctor_id, to_char(date, 'YYYY-MM-DD'), time_of_day, notes, created_at
		FROM availability_slots
		WHERE doctor_id = $1
		ORDER BY date ASC, time_of_day ASC`

	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability slots: %w", err)
	}
	defer rows.Close()

	out := []Slot{}
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.ID, &s.DoctorID, &s.Date, &s.TimeOfDay, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability slot: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read availability slots: %w", err)
	}

	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM availability_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(slotNotFoundMsg)
	}
	return nil
}
