package donor

import (
	"context"
	"sync"

	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/sentinel"
)

// InMemoryStore keeps donor profiles in a map. Used by unit tests and when
// the service runs without a database.
type InMemoryStore struct {
	mu     sync.RWMutex
	donors map[domain.DonorID]Donor
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{donors: make(map[domain.DonorID]Donor)}
}

func (s *InMemoryStore) GetByID(_ context.Context, id domain.DonorID) (*Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donors[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copy := d
	return &copy, nil
}

func (s *InMemoryStore) Save(_ context.Context, d *Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donors[d.ID] = *d
	return nil
}

func (s *InMemoryStore) UpdateProfile(_ context.Context, d *Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.donors[d.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.donors[d.ID] = *d
	return nil
}
