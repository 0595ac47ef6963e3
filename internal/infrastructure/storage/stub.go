package storage

import (
	"context"
	"errors"
	"sync"

	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	"github.com/google/uuid"
)

// Ensure StubFlierStorage implements FlierStorage
var _ ticketingapp.FlierStorage = (*StubFlierStorage)(nil)

// StubFlierStorage keeps fliers in memory. Use it for development and tests
// when no S3-compatible backend is available.
type StubFlierStorage struct {
	mu    sync.Mutex
	files map[string][]byte

	// BaseURL is the base for generated view URLs
	BaseURL string
}

// NewStubFlierStorage creates a new StubFlierStorage
func NewStubFlierStorage() *StubFlierStorage {
	return &StubFlierStorage{
		files:   make(map[string][]byte),
		BaseURL: "https://storage.example.com",
	}
}

// Upload stores the flier in memory and returns a view URL
func (s *StubFlierStorage) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("flier data is empty")
	}

	fileID := uuid.New().String()
	s.mu.Lock()
	s.files[fileID] = data
	s.mu.Unlock()

	return BuildViewURL(s.BaseURL, "fliers", fileID, "stub"), nil
}

// Delete removes the flier referenced by a view URL
func (s *StubFlierStorage) Delete(ctx context.Context, fileURL string) error {
	fileID, err := ExtractFileID(fileURL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.files, fileID)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored fliers
func (s *StubFlierStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
