package request

import (
	"context"
	"sort"
	"sync"

	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/sentinel"
)

// InMemoryStore keeps requests in a map guarded by a RWMutex.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[domain.RequestID]Request
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[domain.RequestID]Request)}
}

func (s *InMemoryStore) GetByID(_ context.Context, id domain.RequestID) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copy := r
	return &copy, nil
}

func (s *InMemoryStore) List(_ context.Context, f Filter) ([]*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Request
	for _, r := range s.requests {
		if f.Fulfilled != nil && r.Fulfilled != *f.Fulfilled {
			continue
		}
		if !f.BloodType.IsNil() && r.BloodType != f.BloodType {
			continue
		}
		if f.CriticalOnly && !r.Critical {
			continue
		}
		copy := r
		out = append(out, &copy)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Critical != out[j].Critical {
			return out[i].Critical
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) ListOpen(ctx context.Context) ([]*Request, error) {
	open := false
	return s.List(ctx, Filter{Fulfilled: &open})
}

func (s *InMemoryStore) Create(_ context.Context, r *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID] = *r
	return nil
}

func (s *InMemoryStore) MarkFulfilled(_ context.Context, id domain.RequestID, donationID domain.DonationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if r.Fulfilled {
		return sentinel.ErrConflict
	}
	r.Fulfilled = true
	r.FulfilledBy = &donationID
	s.requests[id] = r
	return nil
}

func (s *InMemoryStore) FindByFulfillingDonation(_ context.Context, donationID domain.DonationID) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requests {
		if r.FulfilledBy != nil && *r.FulfilledBy == donationID {
			copy := r
			return &copy, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// Snapshot captures the current state and returns a restore function. The
// fulfillment memory runner uses it to emulate transaction rollback.
func (s *InMemoryStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[domain.RequestID]Request, len(s.requests))
	for k, v := range s.requests {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.requests = saved
	}
}
