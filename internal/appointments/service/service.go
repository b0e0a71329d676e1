package service

import (
	"context"
	"time"

	"mediconnect_backend/internal/appointments/lifecycle"
	"mediconnect_backend/internal/appointments/repository"
	"mediconnect_backend/internal/appointments/transport"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/events"
	"mediconnect_backend/platform/apperr"
	"mediconnect_backend/platform/logger"

	"github.com/google/uuid"
)

// Date/time format and error message constants.
const (
	dateFormat = "2006-01-02"
	timeFormat = "15:04"

	errDateFormat = "date must be in YYYY-MM-DD format"
	errTimeFormat = "time must be in HH:MM format"
	errDatePast   = "date cannot be in the past"
)

// UserRef is the slice of a user the appointments module needs.
type UserRef struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// UserDirectory resolves user references for booking validation.
type UserDirectory interface {
	GetRef(ctx context.Context, id uuid.UUID) (UserRef, error)
}

// AlertParams describes an in-app alert to deliver to a user.
type AlertParams struct {
	UserID   uuid.UUID
	Title    string
	Message  string
	Severity string
}

// AlertSender persists in-app alerts. Delivery is best-effort from the
// caller's point of view.
type AlertSender interface {
	Send(ctx context.Context, p AlertParams) error
}

// ReminderScheduler enqueues appointment reminder tasks.
type ReminderScheduler interface {
	ScheduleAppointmentReminder(ctx context.Context, appointmentID uuid.UUID, remindAt time.Time) error
}

// Service provides business logic for appointments
type Service struct {
	repo        repository.Store
	users       UserDirectory
	alerts      AlertSender
	emailSender email.Sender
	eventBus    events.Bus
	reminders   ReminderScheduler
	log         *logger.Logger
}

// New creates a new appointments service. reminders may be nil when no task
// queue is configured.
func New(repo repository.Store, users UserDirectory, alerts AlertSender, emailSender email.Sender, eventBus events.Bus, reminders ReminderScheduler, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		alerts:      alerts,
		emailSender: emailSender,
		eventBus:    eventBus,
		reminders:   reminders,
		log:         log,
	}
}

// Create books a new appointment. The slot must be today or later, the doctor
// reference must resolve to a user with the doctor role, and the patient must
// exist. New appointments always start as pending.
func (s *Service) Create(ctx context.Context, req transport.CreateAppointmentRequest) (*transport.AppointmentResponse, error) {
	if _, err := time.Parse(dateFormat, req.Date); err != nil {
		return nil, apperr.Validation(errDateFormat)
	}
	if _, err := time.Parse(timeFormat, req.Time); err != nil {
		return nil, apperr.Validation(errTimeFormat)
	}
	// ISO dates compare lexicographically; same-day bookings are allowed.
	if req.Date < time.Now().Format(dateFormat) {
		return nil, apperr.Validation(errDatePast)
	}

	doctor, err := s.users.GetRef(ctx, req.DoctorID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.BadRequest("doctor not found")
		}
		return nil, err
	}
	if doctor.Role != "doctor" {
		return nil, apperr.BadRequest("doctorId does not refer to a doctor")
	}

	patient, err := s.users.GetRef(ctx, req.PatientID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.BadRequest("patient not found")
		}
		return nil, err
	}

	now := time.Now()
	appt := &repository.Appointment{
		ID:          uuid.New(),
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		TimeOfDay:   req.Time,
		Status:      string(lifecycle.StatusPending),
		PatientName: patient.Name,
		DoctorName:  doctor.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Reason != "" {
		reason := req.Reason
		appt.Reason = &reason
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, events.AppointmentCreated{
		BaseEvent:     events.NewBaseEvent(),
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		Date:          appt.Date,
		Time:          appt.TimeOfDay,
	})

	return toResponse(appt), nil
}

// GetByID returns an appointment visible to the viewer. Only the booked
// patient and the assigned doctor may see it.
func (s *Service) GetByID(ctx context.Context, id, viewerID uuid.UUID) (*transport.AppointmentResponse, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != viewerID && appt.DoctorID != viewerID {
		return nil, apperr.NotFound("appointment not found")
	}
	return toResponse(appt), nil
}

// List returns the viewer's appointments ordered by date then time.
// Completed appointments are hidden unless req.ShowCompleted is set.
func (s *Service) List(ctx context.Context, viewerID uuid.UUID, viewerRole string, req transport.ListAppointmentsRequest) ([]transport.AppointmentResponse, error) {
	appointments, err := s.repo.List(ctx, repository.ListParams{
		ViewerID:      viewerID,
		ViewerRole:    viewerRole,
		ShowCompleted: req.ShowCompleted,
	})
	if err != nil {
		return nil, err
	}

	out := make([]transport.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		out = append(out, *toResponse(&appointments[i]))
	}
	return out, nil
}

// Update applies a partial update to an appointment. Terminal appointments
// reject every update, confirmed ones only accept completion. When the
// status actually changes the patient gets exactly one alert; alert failures
// are logged and never roll back the update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateAppointmentRequest) (*transport.AppointmentResponse, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current, ok := lifecycle.Parse(appt.Status)
	if !ok {
		return nil, apperr.Internal("appointment has unknown status")
	}

	var requested *lifecycle.Status
	if req.Status != nil {
		status, ok := lifecycle.Parse(*req.Status)
		if !ok {
			return nil, apperr.Validation("invalid status")
		}
		requested = &status
	}

	if err := lifecycle.ValidateUpdate(current, requested); err != nil {
		return nil, err
	}

	if req.Date != nil {
		if _, err := time.Parse(dateFormat, *req.Date); err != nil {
			return nil, apperr.Validation(errDateFormat)
		}
		appt.Date = *req.Date
	}
	if req.Time != nil {
		if _, err := time.Parse(timeFormat, *req.Time); err != nil {
			return nil, apperr.Validation(errTimeFormat)
		}
		appt.TimeOfDay = *req.Time
	}
	if req.Reason != nil {
		if *req.Reason == "" {
			appt.Reason = nil
		} else {
			reason := *req.Reason
			appt.Reason = &reason
		}
	}

	statusChanged := requested != nil && *requested != current
	if statusChanged {
		appt.Status = string(*requested)
	}

	appt.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}

	if statusChanged {
		s.notifyStatusChange(ctx, appt, current, *requested)
	}

	return toResponse(appt), nil
}

// Delete removes an appointment permanently, regardless of its status.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(ctx, events.AppointmentDeleted{
		BaseEvent:     events.NewBaseEvent(),
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
	})

	return nil
}

// notifyStatusChange runs the side effects of a committed status transition:
// one in-app alert to the patient, the domain event, and on confirmation the
// reminder task and email. Everything here is best-effort.
func (s *Service) notifyStatusChange(ctx context.Context, appt *repository.Appointment, oldStatus, newStatus lifecycle.Status) {
	if alert, ok := lifecycle.AlertForTransition(newStatus, appt.Date, appt.TimeOfDay); ok {
		err := s.alerts.Send(ctx, AlertParams{
			UserID:   appt.PatientID,
			Title:    alert.Title,
			Message:  alert.Message,
			Severity: alert.Severity,
		})
		if err != nil {
			s.log.AlertDeliveryFailed(appt.PatientID.String(), err)
		}
	}

	s.eventBus.Publish(ctx, events.AppointmentStatusChanged{
		BaseEvent:     events.NewBaseEvent(),
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		OldStatus:     string(oldStatus),
		NewStatus:     string(newStatus),
		Date:          appt.Date,
		Time:          appt.TimeOfDay,
	})

	if newStatus == lifecycle.StatusUpcoming {
		s.onConfirmed(ctx, appt)
	}
}

// onConfirmed schedules the 24h reminder and sends the confirmation email.
func (s *Service) onConfirmed(ctx context.Context, appt *repository.Appointment) {
	slot, err := time.ParseInLocation(dateFormat+" "+timeFormat, appt.Date+" "+appt.TimeOfDay, time.Local)
	if err == nil && s.reminders != nil {
		remindAt := slot.Add(-24 * time.Hour)
		if remindAt.After(time.Now()) {
			if err := s.reminders.ScheduleAppointmentReminder(ctx, appt.ID, remindAt); err != nil {
				s.log.Error("failed to schedule appointment reminder",
					"appointmentId", appt.ID, "error", err)
			}
		}
	}

	patient, err := s.users.GetRef(ctx, appt.PatientID)
	if err != nil {
		s.log.Error("failed to resolve patient for confirmation email",
			"appointmentId", appt.ID, "error", err)
		return
	}
	if err := s.emailSender.SendAppointmentConfirmedEmail(ctx, patient.Email, patient.Name, appt.Date, appt.TimeOfDay); err != nil {
		s.log.Error("failed to send confirmation email",
			"appointmentId", appt.ID, "error", err)
	}
}

func toResponse(appt *repository.Appointment) *transport.AppointmentResponse {
	return &transport.AppointmentResponse{
		ID:          appt.ID,
		PatientID:   appt.PatientID,
		DoctorID:    appt.DoctorID,
		PatientName: appt.PatientName,
		DoctorName:  appt.DoctorName,
		Date:        appt.Date,
		Time:        appt.TimeOfDay,
		Reason:      appt.Reason,
		Status:      appt.Status,
		CreatedAt:   appt.CreatedAt,
		UpdatedAt:   appt.UpdatedAt,
	}
}
