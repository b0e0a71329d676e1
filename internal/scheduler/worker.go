package scheduler

import (
	"context"
	"fmt"

	"mediconnect_backend/internal/alerts"
	apptrepo "mediconnect_backend/internal/appointments/repository"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/users"
	"mediconnect_backend/platform/config"
	"mediconnect_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

const workerConcurrency = 10

type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	appts       apptrepo.Store
	users       users.Store
	alerts      *alerts.Service
	emailSender email.Sender
	log         *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, emailSender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: workerConcurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:      server,
		mux:         mux,
		appts:       apptrepo.New(pool),
		users:       users.NewRepository(pool),
		alerts:      alerts.NewService(alerts.NewRepository(pool)),
		emailSender: emailSender,
		log:         log,
	}

	mux.HandleFunc(TaskAppointmentReminder, w.handleAppointmentReminder)

	return w, nil
}

// Run blocks processing tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleAppointmentReminder notifies the patient the day before a confirmed
// appointment. Appointments that were cancelled, completed or deleted since
// the task was enqueued are skipped silently.
func (w *Worker) handleAppointmentReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAppointmentReminderPayload(task)
	if err != nil {
		return err
	}

	apptID, err := uuid.Parse(payload.AppointmentID)
	if err != nil {
		return err
	}

	appt, err := w.appts.GetByID(ctx, apptID)
	if err != nil {
		w.log.Info("skipping reminder for missing appointment", "appointmentId", apptID)
		return nil
	}
	if appt.Status != "upcoming" {
		return nil
	}

	alertErr := w.alerts.Send(ctx, alerts.SendParams{
		UserID:   appt.PatientID,
		Title:    "Appointment Reminder",
		Message:  fmt.Sprintf("Reminder: you have an appointment on %s at %s.", appt.Date, appt.TimeOfDay),
		Severity: alerts.SeverityInfo,
	})
	if alertErr != nil {
		w.log.AlertDeliveryFailed(appt.PatientID.String(), alertErr)
	}

	patient, err := w.users.GetByID(ctx, appt.PatientID)
	if err != nil {
		w.log.Error("failed to resolve patient for reminder email", "appointmentId", apptID, "error", err)
		return nil
	}
	if err := w.emailSender.SendAppointmentReminderEmail(ctx, patient.Email, patient.Name, appt.Date, appt.TimeOfDay); err != nil {
		w.log.Error("failed to send reminder email", "appointmentId", apptID, "error", err)
	}

	return nil
}
