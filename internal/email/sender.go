// Package email provides outbound email delivery for appointment
// notifications. Delivery is always best-effort; callers must never fail a
// primary operation because an email could not be sent.
package email

import "context"

// Sender delivers transactional emails to patients.
type Sender interface {
	// SendAppointmentConfirmedEmail notifies a patient that a doctor
	// confirmed their appointment.
	SendAppointmentConfirmedEmail(ctx context.Context, toEmail, patientName, date, timeOfDay string) error
	// SendAppointmentReminderEmail reminds a patient of an upcoming
	// confirmed appointment.
	SendAppointmentReminderEmail(ctx context.Context, toEmail, patientName, date, timeOfDay string) error
}

// NoopSender is used when SMTP is not configured.
type NoopSender struct{}

// NewNoopSender creates a sender that silently drops all messages.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (*NoopSender) SendAppointmentConfirmedEmail(context.Context, string, string, string, string) error {
	return nil
}

func (*NoopSender) SendAppointmentReminderEmail(context.Context, string, string, string, string) error {
	return nil
}
