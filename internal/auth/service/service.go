package service

import (
	"context"
	"strings"
	"time"

	"mediconnect_backend/internal/auth/password"
	"mediconnect_backend/internal/auth/repository"
	"mediconnect_backend/internal/auth/token"
	"mediconnect_backend/internal/auth/transport"
	"mediconnect_backend/internal/events"
	"mediconnect_backend/platform/apperr"
	"mediconnect_backend/platform/logger"
	"mediconnect_backend/platform/phone"

	"github.com/google/uuid"
)

const errInvalidCredentials = "invalid email or password"

// Service provides registration and login.
type Service struct {
	repo     repository.Store
	tokens   *token.Issuer
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new auth service
func New(repo repository.Store, tokens *token.Issuer, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		eventBus: eventBus,
		log:      log,
	}
}

// Register creates an account and returns it with a fresh token. Emails are
// stored lowercased; the role defaults to patient.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := req.Role
	if role == "" {
		role = "patient"
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password")
	}

	account := &repository.Account{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if req.Phone != "" {
		normalized := phone.NormalizeE164(req.Phone)
		account.Phone = &normalized
	}
	if req.Gender != "" {
		gender := req.Gender
		account.Gender = &gender
	}
	if req.DOB != "" {
		dob := req.DOB
		account.DOB = &dob
	}

	if err := s.repo.Create(ctx, account); err != nil {
		s.log.AuthEvent("register", email, false, err.Error())
		return nil, err
	}

	s.log.AuthEvent("register", email, true, "")
	s.eventBus.Publish(ctx, events.UserRegistered{
		BaseEvent: events.NewBaseEvent(),
		UserID:    account.ID,
		Email:     account.Email,
		Role:      account.Role,
	})

	return s.respond(account)
}

// Login verifies credentials and returns the account with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("login", email, false, "unknown email")
			return nil, apperr.Unauthorized(errInvalidCredentials)
		}
		return nil, err
	}

	if !password.Verify(account.PasswordHash, req.Password) {
		s.log.AuthEvent("login", email, false, "wrong password")
		return nil, apperr.Unauthorized(errInvalidCredentials)
	}

	s.log.AuthEvent("login", email, true, "")
	return s.respond(account)
}

func (s *Service) respond(account *repository.Account) (*transport.AuthResponse, error) {
	signed, err := s.tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, apperr.Internal("failed to sign token")
	}

	return &transport.AuthResponse{
		User: transport.UserPayload{
			ID:    account.ID,
			Name:  account.Name,
			Email: account.Email,
			Role:  account.Role,
		},
		Token: signed,
	}, nil
}
