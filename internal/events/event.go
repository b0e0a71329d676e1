// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"mediconnect_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserRegistered is published when a new user successfully registers.
type UserRegistered struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

func (e UserRegistered) EventName() string { return "auth.user.registered" }

// =============================================================================
// Appointment Domain Events
// =============================================================================

// AppointmentCreated is published when a patient books a new appointment.
type AppointmentCreated struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	PatientID     uuid.UUID `json:"patientId"`
	DoctorID      uuid.UUID `json:"doctorId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
}

func (e AppointmentCreated) EventName() string { return "appointments.created" }

// AppointmentStatusChanged is published after a status transition commits.
type AppointmentStatusChanged struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	PatientID     uuid.UUID `json:"patientId"`
	DoctorID      uuid.UUID `json:"doctorId"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
}

func (e AppointmentStatusChanged) EventName() string { return "appointments.status.changed" }

// AppointmentDeleted is published when an appointment is hard-deleted.
type AppointmentDeleted struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	PatientID     uuid.UUID `json:"patientId"`
	DoctorID      uuid.UUID `json:"doctorId"`
}

func (e AppointmentDeleted) EventName() string { return "appointments.deleted" }

// =============================================================================
// Medical Record Domain Events
// =============================================================================

// MedicalRecordUploaded is published when a patient uploads a record file.
type MedicalRecordUploaded struct {
	BaseEvent
	RecordID uuid.UUID `json:"recordId"`
	UserID   uuid.UUID `json:"userId"`
	FileName string    `json:"fileName"`
}

func (e MedicalRecordUploaded) EventName() string { return "records.uploaded" }
