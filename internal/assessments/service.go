// Package assessments stores self-reported health assessments and offers a
// rule-based symptom triage helper.
package assessments

import (
	"context"
	"strings"
	"time"

	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
)

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// SaveParams describes an assessment submission.
type SaveParams struct {
	UserID  uuid.UUID
	Score   int
	Result  string
	Details string
}

// Save persists an assessment for the user.
func (s *Service) Save(ctx context.Context, p SaveParams) (*Assessment, error) {
	if p.Result == "" {
		return nil, apperr.Validation("result is required")
	}

	a := &Assessment{
		ID:        uuid.New(),
		UserID:    p.UserID,
		Score:     p.Score,
		Result:    p.Result,
		CreatedAt: time.Now(),
	}
	if p.Details != "" {
		details := p.Details
		a.Details = &details
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Recent returns the user's latest assessment, nil when they have none.
func (s *Service) Recent(ctx context.Context, userID uuid.UUID) (*Assessment, error) {
	return s.repo.GetMostRecent(ctx, userID)
}

// SymptomAnalysis runs rule-based triage over a free-form symptom
// description.
func (s *Service) SymptomAnalysis(symptoms string) (string, error) {
	if strings.TrimSpace(symptoms) == "" {
		return "", apperr.Validation("symptoms description is required")
	}
	return AnalyzeSymptoms(symptoms), nil
}
