package storage

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	crmapp "github.com/erp/crm/internal/application/crm"
)

var _ crmapp.ObjectStorage = (*StubStorage)(nil)

// StubStorage is an in-memory ObjectStorage for development and tests.
// URLs point at BaseURL and are not signed.
type StubStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]struct{}
}

// NewStubStorage creates a StubStorage serving from https://storage.example.com
func NewStubStorage() *StubStorage {
	return &StubStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string]struct{}),
	}
}

// Put marks key as stored, standing in for a client upload
func (s *StubStorage) Put(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = struct{}{}
}

// PresignUpload implements crmapp.ObjectStorage
func (s *StubStorage) PresignUpload(_ context.Context, key, _ string, expiresIn time.Duration) (crmapp.PresignedURL, error) {
	if key == "" {
		return crmapp.PresignedURL{}, errors.New("storage key is required")
	}
	return crmapp.PresignedURL{
		URL:       s.url("upload", key),
		Method:    http.MethodPut,
		ExpiresAt: time.Now().Add(stubExpiry(expiresIn)),
	}, nil
}

// PresignDownload implements crmapp.ObjectStorage
func (s *StubStorage) PresignDownload(_ context.Context, key string, expiresIn time.Duration) (crmapp.PresignedURL, error) {
	if key == "" {
		return crmapp.PresignedURL{}, errors.New("storage key is required")
	}
	return crmapp.PresignedURL{
		URL:       s.url("download", key),
		Method:    http.MethodGet,
		ExpiresAt: time.Now().Add(stubExpiry(expiresIn)),
	}, nil
}

// Exists implements crmapp.ObjectStorage
func (s *StubStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Delete implements crmapp.ObjectStorage
func (s *StubStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *StubStorage) url(action, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + action + "/" + strings.Join(segments, "/")
}

func stubExpiry(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultPresignExpiration
	}
	return d
}
