package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"mediconnect_backend/internal/auth/repository"
	"mediconnect_backend/internal/auth/token"
	"mediconnect_backend/internal/auth/transport"
	"mediconnect_backend/internal/events"
	"mediconnect_backend/platform/apperr"
	"mediconnect_backend/platform/logger"
)

type fakeStore struct {
	byEmail map[string]*repository.Account
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEmail: make(map[string]*repository.Account)}
}

func (f *fakeStore) Create(_ context.Context, account *repository.Account) error {
	if _, exists := f.byEmail[account.Email]; exists {
		return apperr.Conflict("an account with this email already exists")
	}
	copied := *account
	f.byEmail[account.Email] = &copied
	return nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*repository.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("account not found")
	}
	copied := *account
	return &copied, nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event)          {}
func (nopBus) PublishSync(context.Context, events.Event) error { return nil }
func (nopBus) Subscribe(string, events.Handler)                {}

func newService() (*Service, *fakeStore) {
	store := newFakeStore()
	issuer := token.NewIssuer("test-secret", time.Hour)
	return New(store, issuer, nopBus{}, logger.New("development")), store
}

func TestRegisterDefaultsAndNormalizes(t *testing.T) {
	svc, store := newService()

	resp, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name:     "Asha Rao",
		Email:    "  Asha@Example.COM ",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if resp.User.Email != "asha@example.com" {
		t.Errorf("email = %q, want lowercased", resp.User.Email)
	}
	if resp.User.Role != "patient" {
		t.Errorf("role = %q, want patient default", resp.User.Role)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}

	stored := store.byEmail["asha@example.com"]
	if stored == nil {
		t.Fatal("account not persisted under normalized email")
	}
	if stored.PasswordHash == "longenough" || !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Error("password not stored as a bcrypt hash")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService()

	req := transport.RegisterRequest{Name: "A", Email: "dup@example.com", Password: "longenough"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Register(context.Background(), req)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("err = %v, want conflict", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "longenough", Role: "doctor",
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Login(context.Background(), transport.LoginRequest{
		Email: "ASHA@example.com", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.User.Role != "doctor" {
		t.Errorf("role = %q, want doctor", resp.User.Role)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "longenough",
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		req  transport.LoginRequest
	}{
		{"wrong password", transport.LoginRequest{Email: "asha@example.com", Password: "wrong-password"}},
		{"unknown email", transport.LoginRequest{Email: "nobody@example.com", Password: "longenough"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			if !apperr.Is(err, apperr.KindUnauthorized) {
				t.Errorf("err = %v, want unauthorized", err)
			}
		})
	}
}
