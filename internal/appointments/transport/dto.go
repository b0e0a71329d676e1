package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateAppointmentRequest is the request body for booking an appointment
type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patientId" validate:"required"`
	DoctorID  uuid.UUID `json:"doctorId" validate:"required"`
	Date      string    `json:"date" validate:"required"`
	Time      string    `json:"time" validate:"required"`
	Reason    string    `json:"reason,omitempty" validate:"max=2000"`
}

// UpdateAppointmentRequest is the request body for a partial appointment update.
// All fields are optional; absent fields are left untouched.
type UpdateAppointmentRequest struct {
	Date   *string `json:"date,omitempty"`
	Time   *string `json:"time,omitempty"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=2000"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending upcoming cancelled completed"`
}

// ListAppointmentsRequest is the query parameters for listing appointments
type ListAppointmentsRequest struct {
	ShowCompleted bool `form:"showCompleted"`
}

// AppointmentResponse is the response body for an appointment
type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patientId"`
	DoctorID    uuid.UUID `json:"doctorId"`
	PatientName string    `json:"patientName,omitempty"`
	DoctorName  string    `json:"doctorName,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Reason      *string   `json:"reason,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
