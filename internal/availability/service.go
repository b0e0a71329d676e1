// Package availability lets doctors publish open consultation slots that
// patients browse when booking.
package availability

import (
	"context"
	"time"

	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// CreateParams describes a slot to publish.
type CreateParams struct {
	DoctorID  uuid.UUID
	Date      string
	TimeOfDay string
	Notes     string
}

// Create publishes a slot. The date must be today or later.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Slot, error) {
	if _, err := time.Parse(dateFormat, p.Date); err != nil {
		return nil, apperr.Validation("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", p.TimeOfDay); err != nil {
		return nil, apperr.Validation("time must be in HH:MM format")
	}
	if p.Date < time.Now().Format(dateFormat) {
		return nil, apperr.Validation("date cannot be in the past")
	}

	slot := &Slot{
		ID:        uuid.New(),
		DoctorID:  p.DoctorID,
		Date:      p.Date,
		TimeOfDay: p.TimeOfDay,
		CreatedAt: time.Now(),
	}
	if p.Notes != "" {
		notes := p.Notes
		slot.Notes = &notes
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// List returns a doctor's slots ordered by date then time.
func (s *Service) List(ctx context.Context, doctorID uuid.UUID) ([]Slot, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// Delete removes a slot. Only the owning doctor may delete it.
func (s *Service) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if slot.DoctorID != callerID {
		return apperr.Forbidden("cannot delete another doctor's slot")
	}
	return s.repo.Delete(ctx, id)
}
