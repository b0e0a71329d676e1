package repository

import (
	"context"
	"errors"
	"fmt"

	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const appointmentNotFoundMsg = "appointment not found"

// Repository provides database operations for appointments
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new appointments repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// Create inserts a new appointment
func (r *Repository) Create(ctx context.Context, appt *Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, date, time_of_day, reason, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4::date, $5, $6, $7, $8, $9
		)`

	_, err := r.pool.Exec(ctx, query,
		appt.ID, appt.PatientID, appt.DoctorID, appt.Date, appt.TimeOfDay,
		appt.Reason, appt.Status, appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

// GetByID retrieves an appointment by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	var appt Appointment
	query := `
		SELECT a.id, a.patient_id, a.doctor_id, to_char(a.date, 'YYYY-MM-DD'),
			a.time_of_day, a.reason, a.status, p.name, d.name, a.created_at, a.updated_at
		FROM appointments a
		JOIN users p ON p.id = a.patient_id
		JOIN users d ON d.id = a.doctor_id
		WHERE a.id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&appt.ID, &appt.PatientID, &appt.DoctorID, &appt.Date, &appt.TimeOfDay,
		&appt.Reason, &appt.Status, &appt.PatientName, &appt.DoctorName,
		&appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(appointmentNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return &appt, nil
}

// Update rewrites the mutable columns of an appointment
func (r *Repository) Update(ctx context.Context, appt *Appointment) error {
	query := `
		UPDATE appointments SET
			date = $2::date,
			time_of_day = $3,
			reason = $4,
			status = $5,
			updated_at = $6
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		appt.ID, appt.Date, appt.TimeOfDay, appt.Reason, appt.Status, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(appointmentNotFoundMsg)
	}

	return nil
}

// Delete removes an appointment regardless of its status
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(appointmentNotFoundMsg)
	}

	return nil
}

// List returns the viewer's appointments ordered by date then time of day.
// Completed appointments are hidden unless ShowCompleted is set.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Appointment, error) {
	ownerColumn := "a.patient_id"
	if params.ViewerRole == "doctor" {
		ownerColumn = "a.doctor_id"
	}

	query := `
		SELECT a.id, a.patient_id, a.doctor_id, to_char(a.date, 'YYYY-MM-DD'),
			a.time_of_day, a.reason, a.status, p.name, d.name, a.created_at, a.updated_at
		FROM appointments a
		JOIN users p ON p.id = a.patient_id
		JOIN users d ON d.id = a.doctor_id
		WHERE ` + ownerColumn + ` = $1`
	if !params.ShowCompleted {
		query += ` AND a.status != 'completed'`
	}
	query += ` ORDER BY a.date ASC, a.time_of_day ASC`

	rows, err := r.pool.Query(ctx, query, params.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	appointments := []Appointment{}
	for rows.Next() {
		var appt Appointment
		err := rows.Scan(
			&appt.ID, &appt.PatientID, &appt.DoctorID, &appt.Date, &appt.TimeOfDay,
			&appt.Reason, &appt.Status, &appt.PatientName, &appt.DoctorName,
			&appt.CreatedAt, &appt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read appointments: %w", err)
	}

	return appointments, nil
}
