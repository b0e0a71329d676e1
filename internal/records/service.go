// Package records stores patient-uploaded medical record files: metadata in
// Postgres, file bodies in object storage.
package records

import (
	"context"
	"fmt"
	"io"
	"time"

	"mediconnect_backend/internal/adapters/storage"
	"mediconnect_backend/internal/events"
	"mediconnect_backend/platform/apperr"

	"github.com/google/uuid"
)

type Service struct {
	repo     Store
	storage  storage.StorageService
	bucket   string
	eventBus events.Bus
}

func NewService(repo Store, storageSvc storage.StorageService, bucket string, eventBus events.Bus) *Service {
	return &Service{
		repo:     repo,
		storage:  storageSvc,
		bucket:   bucket,
		eventBus: eventBus,
	}
}

// UploadParams describes a file being uploaded.
type UploadParams struct {
	UserID      uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload stores the file body and persists its metadata. Files go under a
// per-user folder so keys never collide across patients.
func (s *Service) Upload(ctx context.Context, p UploadParams) (*Record, error) {
	if s.storage == nil {
		return nil, apperr.Internal("file storage is not configured")
	}
	if p.FileName == "" {
		return nil, apperr.Validation("file name is required")
	}
	if p.Size <= 0 {
		return nil, apperr.Validation("file is empty")
	}
	if max := s.storage.GetMaxFileSize(); p.Size > max {
		return nil, apperr.Validation(fmt.Sprintf("file exceeds the %d byte limit", max))
	}

	folder := p.UserID.String()
	fileKey, err := s.storage.UploadFile(ctx, s.bucket, folder, p.FileName, p.ContentType, p.Body, p.Size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to store file", err)
	}

	record := &Record{
		ID:          uuid.New(),
		UserID:      p.UserID,
		FileKey:     fileKey,
		FileName:    p.FileName,
		ContentType: p.ContentType,
		SizeBytes:   p.Size,
		UploadedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// Metadata failed; drop the orphaned object.
		_ = s.storage.DeleteObject(ctx, s.bucket, fileKey)
		return nil, err
	}

	s.eventBus.Publish(ctx, events.MedicalRecordUploaded{
		BaseEvent: events.NewBaseEvent(),
		RecordID:  record.ID,
		UserID:    record.UserID,
		FileName:  record.FileName,
	})

	return record, nil
}

// List returns the caller's records, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	return s.repo.ListByUser(ctx, userID)
}

// DownloadURL returns a presigned URL for one of the caller's records.
func (s *Service) DownloadURL(ctx context.Context, id, callerID uuid.UUID) (*storage.PresignedURL, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.UserID != callerID {
		return nil, apperr.NotFound("medical record not found")
	}
	if s.storage == nil {
		return nil, apperr.Internal("file storage is not configured")
	}
	return s.storage.GenerateDownloadURL(ctx, s.bucket, record.FileKey)
}
