package storage

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/stemkits/backend/internal/application/catalog"
	supplierapp "github.com/stemkits/backend/internal/application/supplier"
)

// StubObjectStorage is a development stand-in for an S3 backend. URLs it
// hands out point nowhere; use it when running without object storage
// credentials.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated upload/download URLs
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
	}
}

// GenerateUploadURL generates a stub presigned URL for uploading a file
func (s *StubObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// GenerateDownloadURL generates a stub presigned URL for downloading a file
func (s *StubObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// DeleteObject is a no-op stub that always succeeds
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}

// ObjectExists always reports true so the upload confirmation flow works
// during development
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	return true, nil
}

var (
	_ catalogapp.ObjectStorageService  = (*StubObjectStorage)(nil)
	_ supplierapp.ObjectStorageService = (*StubObjectStorage)(nil)
)
