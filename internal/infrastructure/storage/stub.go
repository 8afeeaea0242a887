// Package storage provides object storage for product images.
package storage

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/noorfashion/backend/internal/application/catalog"
)

// StubImageStorage is a placeholder ImageStorage for development and
// tests when no S3-compatible backend is configured.
type StubImageStorage struct {
	// BaseURL is the base URL for generated links
	BaseURL string
}

// NewStubImageStorage creates a new StubImageStorage
func NewStubImageStorage() *StubImageStorage {
	return &StubImageStorage{
		BaseURL: "https://storage.example.com",
	}
}

// Ensure StubImageStorage implements ImageStorage
var _ catalogapp.ImageStorage = (*StubImageStorage)(nil)

// GenerateUploadURL generates a stub presigned URL for an image upload
func (s *StubImageStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// PublicURL returns a stub public URL for an image
func (s *StubImageStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}

// DeleteObject is a no-op that always succeeds
func (s *StubImageStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}

// ObjectExists always reports true so upload confirmation flows work
// without a backend
func (s *StubImageStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	return true, nil
}
