package users

import (
	"context"
	"testing"

	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeStore struct {
	users      map[uuid.UUID]*User
	listedRole string
	updated    UpdateParams
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[uuid.UUID]*User{}}
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (f *fakeStore) List(_ context.Context, role string) ([]User, error) {
	f.listedRole = role
	out := []User{}
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id uuid.UUID, p UpdateParams) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	f.updated = p
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	return u, nil
}

func TestListRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.List(context.Background(), "admin")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListFiltersByRole(t *testing.T) {
	store := newFakeStore()
	doc := &User{ID: uuid.New(), Name: "Dr. Rao", Email: "rao@clinic.test", Role: "doctor"}
	store.users[doc.ID] = doc
	pat := &User{ID: uuid.New(), Name: "Asha", Email: "asha@example.test", Role: "patient"}
	store.users[pat.ID] = pat

	svc := NewService(store)
	out, err := svc.List(context.Background(), "doctor")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].Role != "doctor" {
		t.Fatalf("expected only doctors, got %+v", out)
	}
	if store.listedRole != "doctor" {
		t.Fatalf("role filter not passed to store, got %q", store.listedRole)
	}
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	store := newFakeStore()
	u := &User{ID: uuid.New(), Name: "Asha", Email: "asha@example.test", Role: "patient"}
	store.users[u.ID] = u

	svc := NewService(store)
	empty := ""
	_, err := svc.UpdateProfile(context.Background(), u.ID, UpdateParams{Name: &empty})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProfileNormalizesPhone(t *testing.T) {
	store := newFakeStore()
	u := &User{ID: uuid.New(), Name: "Asha", Email: "asha@example.test", Role: "patient"}
	store.users[u.ID] = u

	svc := NewService(store)
	raw := "98765 43210"
	got, err := svc.UpdateProfile(context.Background(), u.ID, UpdateParams{Phone: &raw})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Phone == nil || *got.Phone != "+919876543210" {
		t.Fatalf("expected E.164 phone, got %v", got.Phone)
	}
}
