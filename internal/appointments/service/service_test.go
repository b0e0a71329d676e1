package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mediconnect_backend/internal/appointments/repository"
	"mediconnect_backend/internal/appointments/transport"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/events"
	"mediconnect_backend/platform/apperr"
	"mediconnect_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	appointments map[uuid.UUID]*repository.Appointment
}

func newFakeStore() *fakeStore {
	return &fakeStore{appointments: make(map[uuid.UUID]*repository.Appointment)}
}

func (f *fakeStore) Create(_ context.Context, appt *repository.Appointment) error {
	copied := *appt
	f.appointments[appt.ID] = &copied
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*repository.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment not found")
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeStore) Update(_ context.Context, appt *repository.Appointment) error {
	if _, ok := f.appointments[appt.ID]; !ok {
		return apperr.NotFound("appointment not found")
	}
	copied := *appt
	f.appointments[appt.ID] = &copied
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.appointments[id]; !ok {
		return apperr.NotFound("appointment not found")
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeStore) List(_ context.Context, params repository.ListParams) ([]repository.Appointment, error) {
	out := []repository.Appointment{}
	for _, appt := range f.appointments {
		owner := appt.PatientID
		if params.ViewerRole == "doctor" {
			owner = appt.DoctorID
		}
		if owner != params.ViewerID {
			continue
		}
		if !params.ShowCompleted && appt.Status == "completed" {
			continue
		}
		out = append(out, *appt)
	}
	return out, nil
}

type fakeDirectory struct {
	users map[uuid.UUID]UserRef
}

func (f *fakeDirectory) GetRef(_ context.Context, id uuid.UUID) (UserRef, error) {
	ref, ok := f.users[id]
	if !ok {
		return UserRef{}, apperr.NotFound("user not found")
	}
	return ref, nil
}

type fakeAlertSender struct {
	sent    []AlertParams
	failing bool
}

func (f *fakeAlertSender) Send(_ context.Context, p AlertParams) error {
	if f.failing {
		return errors.New("alerts table unavailable")
	}
	f.sent = append(f.sent, p)
	return nil
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(_ context.Context, event events.Event) {
	f.published = append(f.published, event)
}

func (f *fakeBus) PublishSync(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Subscribe(string, events.Handler) {}

type fixture struct {
	svc       *Service
	store     *fakeStore
	alerts    *fakeAlertSender
	bus       *fakeBus
	patientID uuid.UUID
	doctorID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	patientID := uuid.New()
	doctorID := uuid.New()
	dir := &fakeDirectory{users: map[uuid.UUID]UserRef{
		patientID: {ID: patientID, Name: "Asha Rao", Email: "asha@example.com", Role: "patient"},
		doctorID:  {ID: doctorID, Name: "Dr. Mehta", Email: "mehta@example.com", Role: "doctor"},
	}}

	store := newFakeStore()
	alerts := &fakeAlertSender{}
	bus := &fakeBus{}
	svc := New(store, dir, alerts, email.NewNoopSender(), bus, nil, logger.New("development"))

	return &fixture{
		svc:       svc,
		store:     store,
		alerts:    alerts,
		bus:       bus,
		patientID: patientID,
		doctorID:  doctorID,
	}
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func (fx *fixture) book(t *testing.T) *transport.AppointmentResponse {
	t.Helper()
	resp, err := fx.svc.Create(context.Background(), transport.CreateAppointmentRequest{
		PatientID: fx.patientID,
		DoctorID:  fx.doctorID,
		Date:      futureDate(7),
		Time:      "10:30",
		Reason:    "annual checkup",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return resp
}

func (fx *fixture) setStatus(t *testing.T, id uuid.UUID, status string) {
	t.Helper()
	if _, err := fx.svc.Update(context.Background(), id, transport.UpdateAppointmentRequest{Status: &status}); err != nil {
		t.Fatalf("Update to %s: %v", status, err)
	}
}

func TestCreateStartsPending(t *testing.T) {
	fx := newFixture(t)

	resp := fx.book(t)
	if resp.Status != "pending" {
		t.Errorf("status = %q, want pending", resp.Status)
	}
	if resp.PatientName != "Asha Rao" || resp.DoctorName != "Dr. Mehta" {
		t.Errorf("names not resolved: %q / %q", resp.PatientName, resp.DoctorName)
	}
	if len(fx.bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(fx.bus.published))
	}
	if name := fx.bus.published[0].EventName(); name != "appointments.created" {
		t.Errorf("event = %q", name)
	}
}

func TestCreateAcceptsToday(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Create(context.Background(), transport.CreateAppointmentRequest{
		PatientID: fx.patientID,
		DoctorID:  fx.doctorID,
		Date:      time.Now().Format("2006-01-02"),
		Time:      "16:00",
	})
	if err != nil {
		t.Fatalf("same-day booking rejected: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	fx := newFixture(t)
	strangerID := uuid.New()

	tests := []struct {
		name     string
		mutate   func(*transport.CreateAppointmentRequest)
		wantKind apperr.Kind
	}{
		{"past date", func(r *transport.CreateAppointmentRequest) { r.Date = "2000-01-01" }, apperr.KindValidation},
		{"bad date format", func(r *transport.CreateAppointmentRequest) { r.Date = "01-05-2026" }, apperr.KindValidation},
		{"bad time format", func(r *transport.CreateAppointmentRequest) { r.Time = "half past ten" }, apperr.KindValidation},
		{"unknown doctor", func(r *transport.CreateAppointmentRequest) { r.DoctorID = strangerID }, apperr.KindBadRequest},
		{"unknown patient", func(r *transport.CreateAppointmentRequest) { r.PatientID = strangerID }, apperr.KindBadRequest},
		{"doctor ref is a patient", func(r *transport.CreateAppointmentRequest) { r.DoctorID = fx.patientID }, apperr.KindBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := transport.CreateAppointmentRequest{
				PatientID: fx.patientID,
				DoctorID:  fx.doctorID,
				Date:      futureDate(7),
				Time:      "10:30",
			}
			tt.mutate(&req)
			_, err := fx.svc.Create(context.Background(), req)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperr.GetKind(err); got != tt.wantKind {
				t.Errorf("kind = %v, want %v", got, tt.wantKind)
			}
		})
	}
}

func TestConfirmEmitsSingleInfoAlert(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)

	fx.setStatus(t, appt.ID, "upcoming")

	if len(fx.alerts.sent) != 1 {
		t.Fatalf("sent %d alerts, want 1", len(fx.alerts.sent))
	}
	alert := fx.alerts.sent[0]
	if alert.UserID != fx.patientID {
		t.Error("alert must target the patient")
	}
	if alert.Title != "Appointment Update" {
		t.Errorf("title = %q", alert.Title)
	}
	want := "Your appointment on " + appt.Date + " at 10:30 was confirmed."
	if alert.Message != want {
		t.Errorf("message = %q, want %q", alert.Message, want)
	}
	if alert.Severity != "info" {
		t.Errorf("severity = %q, want info", alert.Severity)
	}
}

func TestCancelEmitsWarningAlert(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)

	fx.setStatus(t, appt.ID, "cancelled")

	if len(fx.alerts.sent) != 1 {
		t.Fatalf("sent %d alerts, want 1", len(fx.alerts.sent))
	}
	if fx.alerts.sent[0].Severity != "warning" {
		t.Errorf("severity = %q, want warning", fx.alerts.sent[0].Severity)
	}
	want := "Your appointment on " + appt.Date + " at 10:30 was cancelled."
	if fx.alerts.sent[0].Message != want {
		t.Errorf("message = %q, want %q", fx.alerts.sent[0].Message, want)
	}
}

func TestCompleteEmitsInfoAlert(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)

	fx.setStatus(t, appt.ID, "upcoming")
	fx.setStatus(t, appt.ID, "completed")

	if len(fx.alerts.sent) != 2 {
		t.Fatalf("sent %d alerts, want 2", len(fx.alerts.sent))
	}
	last := fx.alerts.sent[1]
	want := "Your appointment on " + appt.Date + " at 10:30 is marked as completed."
	if last.Message != want {
		t.Errorf("message = %q, want %q", last.Message, want)
	}
	if last.Severity != "info" {
		t.Errorf("severity = %q, want info", last.Severity)
	}
}

func TestNonStatusUpdateEmitsNoAlert(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)

	reason := "follow-up visit"
	resp, err := fx.svc.Update(context.Background(), appt.ID, transport.UpdateAppointmentRequest{Reason: &reason})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.Reason == nil || *resp.Reason != reason {
		t.Errorf("reason not applied: %v", resp.Reason)
	}
	if len(fx.alerts.sent) != 0 {
		t.Errorf("sent %d alerts, want 0", len(fx.alerts.sent))
	}
}

func TestUpdateReturnsPersistedTimestamp(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)

	reason := "follow-up visit"
	resp, err := fx.svc.Update(context.Background(), appt.ID, transport.UpdateAppointmentRequest{Reason: &reason})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored := fx.store.appointments[appt.ID]
	if !resp.UpdatedAt.Equal(stored.UpdatedAt) {
		t.Errorf("response updatedAt %v differs from stored %v", resp.UpdatedAt, stored.UpdatedAt)
	}
	if !resp.UpdatedAt.After(appt.UpdatedAt) {
		t.Errorf("updatedAt %v not advanced past %v", resp.UpdatedAt, appt.UpdatedAt)
	}
}

func TestSameStatusUpdateEmitsNoAlert(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)

	fx.setStatus(t, appt.ID, "pending")

	if len(fx.alerts.sent) != 0 {
		t.Errorf("sent %d alerts, want 0", len(fx.alerts.sent))
	}
}

func TestConfirmedRejectsEverythingButCompletion(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)
	fx.setStatus(t, appt.ID, "upcoming")

	for _, status := range []string{"cancelled", "pending"} {
		s := status
		_, err := fx.svc.Update(context.Background(), appt.ID, transport.UpdateAppointmentRequest{Status: &s})
		if !apperr.Is(err, apperr.KindForbidden) {
			t.Errorf("upcoming -> %s: err = %v, want forbidden", status, err)
		}
	}
	if len(fx.alerts.sent) != 1 {
		t.Errorf("rejected transitions must not emit alerts, got %d", len(fx.alerts.sent))
	}
}

func TestTerminalAppointmentIsLocked(t *testing.T) {
	for _, terminal := range []string{"cancelled", "completed"} {
		t.Run(terminal, func(t *testing.T) {
			fx := newFixture(t)
			appt := fx.book(t)
			if terminal == "completed" {
				fx.setStatus(t, appt.ID, "upcoming")
			}
			fx.setStatus(t, appt.ID, terminal)
			alertsBefore := len(fx.alerts.sent)

			reason := "changed my mind"
			_, err := fx.svc.Update(context.Background(), appt.ID, transport.UpdateAppointmentRequest{Reason: &reason})
			if !apperr.Is(err, apperr.KindForbidden) {
				t.Errorf("non-status update on %s: err = %v, want forbidden", terminal, err)
			}

			status := "pending"
			_, err = fx.svc.Update(context.Background(), appt.ID, transport.UpdateAppointmentRequest{Status: &status})
			if !apperr.Is(err, apperr.KindForbidden) {
				t.Errorf("status update on %s: err = %v, want forbidden", terminal, err)
			}

			if len(fx.alerts.sent) != alertsBefore {
				t.Error("locked appointment emitted alerts")
			}
		})
	}
}

func TestPendingCannotComplete(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)

	status := "completed"
	_, err := fx.svc.Update(context.Background(), appt.ID, transport.UpdateAppointmentRequest{Status: &status})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("pending -> completed: err = %v, want forbidden", err)
	}
}

func TestAlertFailureDoesNotRollBackUpdate(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)
	fx.alerts.failing = true

	status := "upcoming"
	resp, err := fx.svc.Update(context.Background(), appt.ID, transport.UpdateAppointmentRequest{Status: &status})
	if err != nil {
		t.Fatalf("update failed because of alert delivery: %v", err)
	}
	if resp.Status != "upcoming" {
		t.Errorf("status = %q, want upcoming", resp.Status)
	}

	stored, err := fx.store.GetByID(context.Background(), appt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != "upcoming" {
		t.Errorf("persisted status = %q, want upcoming", stored.Status)
	}
}

func TestDeleteIsUnconditional(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)
	fx.setStatus(t, appt.ID, "upcoming")
	fx.setStatus(t, appt.ID, "completed")

	if err := fx.svc.Delete(context.Background(), appt.ID); err != nil {
		t.Fatalf("Delete on completed appointment: %v", err)
	}
	if _, err := fx.store.GetByID(context.Background(), appt.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Error("appointment still present after delete")
	}
}

func TestDeleteUnknownAppointment(t *testing.T) {
	fx := newFixture(t)

	err := fx.svc.Delete(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestListHidesCompletedByDefault(t *testing.T) {
	fx := newFixture(t)
	first := fx.book(t)
	second := fx.book(t)
	fx.setStatus(t, first.ID, "upcoming")
	fx.setStatus(t, first.ID, "completed")

	visible, err := fx.svc.List(context.Background(), fx.patientID, "patient", transport.ListAppointmentsRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 1 || visible[0].ID != second.ID {
		t.Errorf("default list = %d items, want only the pending one", len(visible))
	}

	all, err := fx.svc.List(context.Background(), fx.patientID, "patient", transport.ListAppointmentsRequest{ShowCompleted: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("showCompleted list = %d items, want 2", len(all))
	}
}

func TestGetByIDScopedToParticipants(t *testing.T) {
	fx := newFixture(t)
	appt := fx.book(t)

	if _, err := fx.svc.GetByID(context.Background(), appt.ID, fx.patientID); err != nil {
		t.Errorf("patient denied: %v", err)
	}
	if _, err := fx.svc.GetByID(context.Background(), appt.ID, fx.doctorID); err != nil {
		t.Errorf("doctor denied: %v", err)
	}
	if _, err := fx.svc.GetByID(context.Background(), appt.ID, uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("stranger got %v, want not found", err)
	}
}
