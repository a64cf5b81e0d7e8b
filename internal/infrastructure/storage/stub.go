package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	catalogapp "github.com/shopcart/backend/internal/application/catalog"
)

// StubPhotoStorage keeps uploaded photos in memory.
// It is used when object storage is disabled, in development and in tests.
type StubPhotoStorage struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubPhotoStorage creates an empty stub serving from https://storage.local
func NewStubPhotoStorage() *StubPhotoStorage {
	return &StubPhotoStorage{
		BaseURL: "https://storage.local/photos",
		objects: make(map[string][]byte),
	}
}

var _ catalogapp.PhotoStorage = (*StubPhotoStorage)(nil)

// Upload reads body fully and remembers it under key
func (s *StubPhotoStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return s.BaseURL + "/" + key, nil
}

// DeleteByURL forgets the object behind publicURL, if any
func (s *StubPhotoStorage) DeleteByURL(_ context.Context, publicURL string) error {
	key, ok := strings.CutPrefix(publicURL, s.BaseURL+"/")
	if !ok {
		return nil
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Object returns the stored bytes for key
func (s *StubPhotoStorage) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}
