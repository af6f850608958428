package crm

import (
	"context"
	"time"
)

// PresignedURL is a time-limited URL granting one operation on an object
type PresignedURL struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// ObjectStorage is the attachment store. Implementations live in
// infrastructure/storage (S3-compatible services and an offline stub).
type ObjectStorage interface {
	// PresignUpload returns a URL the client PUTs the object body to
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (PresignedURL, error)
	// PresignDownload returns a URL the client GETs the object from
	PresignDownload(ctx context.Context, key string, expiresIn time.Duration) (PresignedURL, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}
