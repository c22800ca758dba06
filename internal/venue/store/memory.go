package store

import (
	"context"
	"sync"

	"boxoffice/internal/venue/models"
	"boxoffice/pkg/platform/sentinel"
)

// MemoryStore serves a venue held in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	venue *models.Venue
}

// NewMemory constructs a memory store around the given venue.
func NewMemory(venue *models.Venue) *MemoryStore {
	return &MemoryStore{venue: venue}
}

func (s *MemoryStore) Get(_ context.Context) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.venue == nil {
		return nil, sentinel.ErrNotFound
	}
	return s.venue, nil
}

// Replace swaps the served venue, for tests and demo reloads.
func (s *MemoryStore) Replace(venue *models.Venue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venue = venue
}
