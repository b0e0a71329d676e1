// Package lifecycle owns the appointment status state machine: which
// transitions are legal, which statuses lock the record, and which
// transitions must notify the patient.
package lifecycle

import (
	"fmt"

	"mediconnect_backend/platform/apperr"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	// StatusPending is the initial state set at creation.
	StatusPending Status = "pending"
	// StatusUpcoming means the doctor confirmed the appointment.
	StatusUpcoming Status = "upcoming"
	// StatusCancelled is terminal; the record is locked.
	StatusCancelled Status = "cancelled"
	// StatusCompleted is terminal; the record is locked.
	StatusCompleted Status = "completed"
)

// allowedTransitions maps each status to the statuses it may legally become.
// Kept as an explicit table so the policy stays auditable.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusUpcoming, StatusCancelled},
	StatusUpcoming:  {StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// Parse returns the Status for a raw string, false if unknown.
func Parse(raw string) (Status, bool) {
	s := Status(raw)
	_, ok := allowedTransitions[s]
	return s, ok
}

// IsTerminal reports whether the status locks the appointment against any
// further update, including updates that do not touch the status.
func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransition reports whether from may legally become to.
func CanTransition(from, to Status) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateUpdate applies the update policy for an appointment in the given
// current status. requested is nil when the update does not touch the status.
// The checks run in a fixed order: terminal lock first, then the
// confirmed-only-completes rule, then the completes-need-confirmation rule.
func ValidateUpdate(current Status, requested *Status) error {
	if IsTerminal(current) {
		return apperr.Forbidden("appointment can no longer be changed")
	}
	if requested == nil {
		return nil
	}
	if current == StatusUpcoming && *requested != StatusCompleted {
		return apperr.Forbidden("a confirmed appointment can only be marked completed")
	}
	if *requested == StatusCompleted && current != StatusUpcoming {
		return apperr.Forbidden("only confirmed appointments can be marked completed")
	}
	return nil
}

// Severity levels for transition alerts.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Alert describes the patient notification implied by a status transition.
type Alert struct {
	Title    string
	Message  string
	Severity string
}

// AlertForTransition returns the alert a transition into newStatus must
// produce, false when the transition is not alert-worthy. date and timeOfDay
// are rendered into the message as stored on the appointment.
func AlertForTransition(newStatus Status, date, timeOfDay string) (Alert, bool) {
	switch newStatus {
	case StatusUpcoming:
		return Alert{
			Title:    "Appointment Update",
			Message:  fmt.Sprintf("Your appointment on %s at %s was confirmed.", date, timeOfDay),
			Severity: SeverityInfo,
		}, true
	case StatusCancelled:
		return Alert{
			Title:    "Appointment Update",
			Message:  fmt.Sprintf("Your appointment on %s at %s was cancelled.", date, timeOfDay),
			Severity: SeverityWarning,
		}, true
	case StatusCompleted:
		return Alert{
			Title:    "Appointment Update",
			Message:  fmt.Sprintf("Your appointment on %s at %s is marked as completed.", date, timeOfDay),
			Severity: SeverityInfo,
		}, true
	default:
		return Alert{}, false
	}
}
