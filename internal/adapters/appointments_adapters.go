// Package adapters bridges modules without letting them import each other
// directly. Each adapter narrows a module's service to the interface a
// consumer declares.
package adapters

import (
	"context"

	"mediconnect_backend/internal/alerts"
	"mediconnect_backend/internal/appointments/service"
	"mediconnect_backend/internal/users"

	"github.com/google/uuid"
)

// AppointmentsUserDirectory adapts the users service to the directory lookup
// the appointments module validates bookings against.
type AppointmentsUserDirectory struct {
	users *users.Service
}

func NewAppointmentsUserDirectory(svc *users.Service) *AppointmentsUserDirectory {
	return &AppointmentsUserDirectory{users: svc}
}

func (a *AppointmentsUserDirectory) GetRef(ctx context.Context, id uuid.UUID) (service.UserRef, error) {
	u, err := a.users.GetByID(ctx, id)
	if err != nil {
		return service.UserRef{}, err
	}
	return service.UserRef{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}

var _ service.UserDirectory = (*AppointmentsUserDirectory)(nil)

// AppointmentsAlertSender adapts the alerts service to the sender the
// appointments module notifies patients through.
type AppointmentsAlertSender struct {
	alerts *alerts.Service
}

func NewAppointmentsAlertSender(svc *alerts.Service) *AppointmentsAlertSender {
	return &AppointmentsAlertSender{alerts: svc}
}

func (a *AppointmentsAlertSender) Send(ctx context.Context, p service.AlertParams) error {
	return a.alerts.Send(ctx, alerts.SendParams{
		UserID:   p.UserID,
		Title:    p.Title,
		Message:  p.Message,
		Severity: p.Severity,
	})
}

var _ service.AlertSender = (*AppointmentsAlertSender)(nil)
