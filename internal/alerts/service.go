// Package alerts persists and serves in-app alerts. Other modules emit
// alerts through Service.Send; the HTTP surface only lists them.
package alerts

import (
	"context"

	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
)

// Severity levels an alert can carry.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// SendParams describes an alert to deliver.
type SendParams struct {
	UserID   uuid.UUID
	Title    string
	Message  string
	Severity string
}

// Send persists the alert. Callers treat delivery as best-effort; the error
// return exists so they can log it.
func (s *Service) Send(ctx context.Context, p SendParams) error {
	if p.Severity != "" && p.Severity != SeverityInfo && p.Severity != SeverityWarning {
		return apperr.Validation("severity must be info or warning")
	}

	_, err := s.repo.Create(ctx, CreateParams(p))
	return err
}

// List returns the user's alerts, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Alert, error) {
	return s.repo.List(ctx, userID)
}
