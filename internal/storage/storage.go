package storage

import (
	"context"
	"time"
)

// FileStorage archives generated documents. Objects are addressed by key,
// not by URL.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, prefix, filename, contentType string) (string, error)

	DeleteFile(ctx context.Context, key string) error

	GetFile(ctx context.Context, key string) ([]byte, error)

	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
