package lifecycle

import (
	"testing"

	"mediconnect_backend/platform/apperr"
)

func statusPtr(s Status) *Status { return &s }

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"upcoming", StatusUpcoming, true},
		{"cancelled", StatusCancelled, true},
		{"completed", StatusCompleted, true},
		{"confirmed", "", false},
		{"", "", false},
		{"PENDING", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.raw)
		if ok != tt.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusUpcoming, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusUpcoming, StatusCompleted, true},
		{StatusUpcoming, StatusCancelled, false},
		{StatusUpcoming, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusUpcoming, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusUpcoming, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(StatusPending) || IsTerminal(StatusUpcoming) {
		t.Error("pending and upcoming must not be terminal")
	}
	if !IsTerminal(StatusCancelled) || !IsTerminal(StatusCompleted) {
		t.Error("cancelled and completed must be terminal")
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name      string
		current   Status
		requested *Status
		wantKind  apperr.Kind
		wantErr   bool
	}{
		{"pending to upcoming", StatusPending, statusPtr(StatusUpcoming), 0, false},
		{"pending to cancelled", StatusPending, statusPtr(StatusCancelled), 0, false},
		{"pending non-status update", StatusPending, nil, 0, false},
		{"pending to completed rejected", StatusPending, statusPtr(StatusCompleted), apperr.KindForbidden, true},
		{"upcoming to completed", StatusUpcoming, statusPtr(StatusCompleted), 0, false},
		{"upcoming to cancelled rejected", StatusUpcoming, statusPtr(StatusCancelled), apperr.KindForbidden, true},
		{"upcoming to pending rejected", StatusUpcoming, statusPtr(StatusPending), apperr.KindForbidden, true},
		{"upcoming non-status update", StatusUpcoming, nil, 0, false},
		{"cancelled locked for status", StatusCancelled, statusPtr(StatusUpcoming), apperr.KindForbidden, true},
		{"cancelled locked for non-status", StatusCancelled, nil, apperr.KindForbidden, true},
		{"completed locked for status", StatusCompleted, statusPtr(StatusPending), apperr.KindForbidden, true},
		{"completed locked for non-status", StatusCompleted, nil, apperr.KindForbidden, true},
		// no-op status writes on live records are allowed
		{"pending to pending", StatusPending, statusPtr(StatusPending), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdate(tt.current, tt.requested)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if got := apperr.GetKind(err); got != tt.wantKind {
					t.Errorf("kind = %v, want %v", got, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAlertForTransition(t *testing.T) {
	tests := []struct {
		status       Status
		wantMessage  string
		wantSeverity string
		wantOK       bool
	}{
		{StatusUpcoming, "Your appointment on 2026-03-14 at 10:30 was confirmed.", SeverityInfo, true},
		{StatusCancelled, "Your appointment on 2026-03-14 at 10:30 was cancelled.", SeverityWarning, true},
		{StatusCompleted, "Your appointment on 2026-03-14 at 10:30 is marked as completed.", SeverityInfo, true},
		{StatusPending, "", "", false},
	}
	for _, tt := range tests {
		alert, ok := AlertForTransition(tt.status, "2026-03-14", "10:30")
		if ok != tt.wantOK {
			t.Errorf("AlertForTransition(%q) ok = %v, want %v", tt.status, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if alert.Title != "Appointment Update" {
			t.Errorf("title = %q, want %q", alert.Title, "Appointment Update")
		}
		if alert.Message != tt.wantMessage {
			t.Errorf("message = %q, want %q", alert.Message, tt.wantMessage)
		}
		if alert.Severity != tt.wantSeverity {
			t.Errorf("severity = %q, want %q", alert.Severity, tt.wantSeverity)
		}
	}
}
