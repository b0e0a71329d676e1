// Package appointments provides the appointments domain module: booking,
// lifecycle transitions, and the patient notifications they trigger.
package appointments

import (
	"mediconnect_backend/internal/appointments/handler"
	"mediconnect_backend/internal/appointments/repository"
	"mediconnect_backend/internal/appointments/service"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/events"
	apphttp "mediconnect_backend/internal/http"
	"mediconnect_backend/platform/logger"
	"mediconnect_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the appointments domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new appointments module with all dependencies wired.
// reminders may be nil when no task queue is configured.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, users service.UserDirectory, alerts service.AlertSender, emailSender email.Sender, eventBus events.Bus, reminders service.ReminderScheduler, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, users, alerts, emailSender, eventBus, reminders, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "appointments"
}

// RegisterRoutes registers the module's routes under /api/v1/appointments
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	appointments := ctx.Protected.Group("/appointments")
	m.handler.RegisterRoutes(appointments)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
