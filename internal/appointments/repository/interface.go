package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Appointment represents the appointment database model. PatientName and
// DoctorName are join projections populated by reads, never written back.
type Appointment struct {
	ID          uuid.UUID `db:"id"`
	PatientID   uuid.UUID `db:"patient_id"`
	DoctorID    uuid.UUID `db:"doctor_id"`
	Date        string    `db:"date"`
	TimeOfDay   string    `db:"time_of_day"`
	Reason      *string   `db:"reason"`
	Status      string    `db:"status"`
	PatientName string    `db:"patient_name"`
	DoctorName  string    `db:"doctor_name"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ListParams contains parameters for listing appointments. Doctors see the
// appointments assigned to them, everyone else sees their own bookings.
type ListParams struct {
	ViewerID      uuid.UUID
	ViewerRole    string
	ShowCompleted bool
}

// Store provides database operations for appointments.
type Store interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) ([]Appointment, error)
}
