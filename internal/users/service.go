// Package users is the account directory: doctor listings for the booking
// form, profile reads, and profile updates. Credentials live in auth.
package users

import (
	"context"

	"mediconnect_backend/platform/apperr"
	"mediconnect_backend/platform/phone"

	"github.com/google/uuid"
)

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// List returns the directory, optionally filtered by role.
func (s *Service) List(ctx context.Context, role string) ([]User, error) {
	if role != "" && role != "patient" && role != "doctor" {
		return nil, apperr.Validation("role must be patient or doctor")
	}
	return s.repo.List(ctx, role)
}

// UpdateProfile patches a user's own directory profile.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, p UpdateParams) (*User, error) {
	if p.Name != nil && *p.Name == "" {
		return nil, apperr.Validation("name cannot be empty")
	}
	if p.Phone != nil && *p.Phone != "" {
		normalized := phone.NormalizeE164(*p.Phone)
		p.Phone = &normalized
	}
	return s.repo.Update(ctx, id, p)
}
