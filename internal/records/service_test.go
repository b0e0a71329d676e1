package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"mediconnect_backend/internal/adapters/storage"
	"mediconnect_backend/internal/events"
	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeStore struct {
	records    map[uuid.UUID]*Record
	failCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[uuid.UUID]*Record{}}
}

func (f *fakeStore) Create(_ context.Context, record *Record) error {
	if f.failCreate {
		return errors.New("metadata insert failed")
	}
	copied := *record
	f.records[record.ID] = &copied
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, apperr.NotFound("medical record not found")
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID uuid.UUID) ([]Record, error) {
	out := []Record{}
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeStorage struct {
	objects map[string]bool
	deleted []string
	presign []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]bool{}}
}

func (f *fakeStorage) EnsureBucketExists(context.Context, string) error { return nil }

func (f *fakeStorage) UploadFile(_ context.Context, _, folder, fileName, _ string, _ io.Reader, _ int64) (string, error) {
	key := folder + "/" + fileName
	f.objects[key] = true
	return key, nil
}

var _ storage.StorageService = (*fakeStorage)(nil)

func (f *fakeStorage) GenerateDownloadURL(_ context.Context, _, fileKey string) (*storage.PresignedURL, error) {
	f.presign = append(f.presign, fileKey)
	return &storage.PresignedURL{
		URL:       "https://storage.test/" + fileKey,
		FileKey:   fileKey,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, _, fileKey string) error {
	delete(f.objects, fileKey)
	f.deleted = append(f.deleted, fileKey)
	return nil
}

func (f *fakeStorage) GetMaxFileSize() int64 { return 1 << 20 }

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
	svc     *Service
	store   *fakeStore
	storage *fakeStorage
	bus     *fakeBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	storageSvc := newFakeStorage()
	bus := &fakeBus{}
	return &fixture{
		svc:     NewService(store, storageSvc, "medical-records", bus),
		store:   store,
		storage: storageSvc,
		bus:     bus,
	}
}

func uploadParams(userID uuid.UUID) UploadParams {
	return UploadParams{
		UserID:      userID,
		FileName:    "bloodwork.pdf",
		ContentType: "application/pdf",
		Size:        512,
		Body:        strings.NewReader("pdf bytes"),
	}
}

func TestUploadStoresFileAndMetadata(t *testing.T) {
	fx := newFixture(t)
	userID := uuid.New()

	record, err := fx.svc.Upload(context.Background(), uploadParams(userID))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if record.FileKey != userID.String()+"/bloodwork.pdf" {
		t.Errorf("fileKey = %q", record.FileKey)
	}
	if _, ok := fx.store.records[record.ID]; !ok {
		t.Error("metadata not persisted")
	}
	if !fx.storage.objects[record.FileKey] {
		t.Error("object not stored")
	}
	if len(fx.bus.published) != 1 || fx.bus.published[0].EventName() != "records.uploaded" {
		t.Errorf("published events: %v", fx.bus.published)
	}
}

func TestUploadValidation(t *testing.T) {
	fx := newFixture(t)
	userID := uuid.New()

	cases := []struct {
		name   string
		mutate func(*UploadParams)
	}{
		{"missing file name", func(p *UploadParams) { p.FileName = "" }},
		{"empty file", func(p *UploadParams) { p.Size = 0 }},
		{"oversized file", func(p *UploadParams) { p.Size = fx.storage.GetMaxFileSize() + 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := uploadParams(userID)
			tc.mutate(&p)
			if _, err := fx.svc.Upload(context.Background(), p); !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUploadCleansUpOrphanedObject(t *testing.T) {
	fx := newFixture(t)
	fx.store.failCreate = true
	userID := uuid.New()

	_, err := fx.svc.Upload(context.Background(), uploadParams(userID))
	if err == nil {
		t.Fatal("expected upload to fail")
	}

	wantKey := userID.String() + "/bloodwork.pdf"
	if len(fx.storage.deleted) != 1 || fx.storage.deleted[0] != wantKey {
		t.Errorf("deleted objects = %v, want [%s]", fx.storage.deleted, wantKey)
	}
	if fx.storage.objects[wantKey] {
		t.Error("orphaned object left in storage")
	}
	if len(fx.bus.published) != 0 {
		t.Errorf("published %d events for failed upload", len(fx.bus.published))
	}
}

func TestUploadRequiresConfiguredStorage(t *testing.T) {
	svc := NewService(newFakeStore(), nil, "medical-records", &fakeBus{})

	_, err := svc.Upload(context.Background(), uploadParams(uuid.New()))
	if !apperr.Is(err, apperr.KindInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestDownloadURLScopedToOwner(t *testing.T) {
	fx := newFixture(t)
	ownerID := uuid.New()

	record, err := fx.svc.Upload(context.Background(), uploadParams(ownerID))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if _, err := fx.svc.DownloadURL(context.Background(), record.ID, uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found for stranger, got %v", err)
	}
	if len(fx.storage.presign) != 0 {
		t.Error("presigned URL generated for stranger")
	}

	url, err := fx.svc.DownloadURL(context.Background(), record.ID, ownerID)
	if err != nil {
		t.Fatalf("DownloadURL: %v", err)
	}
	if url.FileKey != record.FileKey {
		t.Errorf("fileKey = %q, want %q", url.FileKey, record.FileKey)
	}
}

func TestListScopedToUser(t *testing.T) {
	fx := newFixture(t)
	ownerID := uuid.New()

	for i := 0; i < 2; i++ {
		p := uploadParams(ownerID)
		p.FileName = fmt.Sprintf("scan-%d.pdf", i)
		if _, err := fx.svc.Upload(context.Background(), p); err != nil {
			t.Fatalf("Upload: %v", err)
		}
	}
	if _, err := fx.svc.Upload(context.Background(), uploadParams(uuid.New())); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	records, err := fx.svc.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("listed %d records, want 2", len(records))
	}
}
