// Package storage provides object storage for uploaded medical record files.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL is a time-limited URL for direct object access.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StorageService abstracts the object store used for medical record files.
type StorageService interface {
	EnsureBucketExists(ctx context.Context, bucket string) error
	UploadFile(ctx context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)
	DeleteObject(ctx context.Context, bucket, fileKey string) error
	GetMaxFileSize() int64
}
