package donation

import (
	"context"
	"sort"
	"sync"

	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/sentinel"
)

// InMemoryStore keeps donation listings in a map guarded by a RWMutex.
type InMemoryStore struct {
	mu        sync.RWMutex
	donations map[domain.DonationID]Donation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{donations: make(map[domain.DonationID]Donation)}
}

func (s *InMemoryStore) GetByID(_ context.Context, id domain.DonationID) (*Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copy := d
	return &copy, nil
}

func (s *InMemoryStore) ListAvailable(_ context.Context, bloodType domain.BloodType) ([]*Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Donation
	for _, d := range s.donations {
		if !d.Available {
			continue
		}
		if !bloodType.IsNil() && d.BloodType != bloodType {
			continue
		}
		copy := d
		out = append(out, &copy)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemoryStore) ListByDonor(_ context.Context, donorID domain.DonorID) ([]*Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Donation
	for _, d := range s.donations {
		if d.DonorID != donorID {
			continue
		}
		copy := d
		out = append(out, &copy)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DonationDate.After(out[j].DonationDate)
	})
	return out, nil
}

func (s *InMemoryStore) Create(_ context.Context, d *Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donations[d.ID] = *d
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, d *Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.donations[d.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	existing.DonorName = d.DonorName
	existing.BloodType = d.BloodType
	existing.DonationDate = d.DonationDate
	existing.ContactNumber = d.ContactNumber
	existing.Location = d.Location
	existing.Latitude = d.Latitude
	existing.Longitude = d.Longitude
	s.donations[d.ID] = existing
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.DonationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.donations[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.donations, id)
	return nil
}

func (s *InMemoryStore) Reserve(_ context.Context, id domain.DonationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !d.Available {
		return sentinel.ErrConflict
	}
	d.Available = false
	s.donations[id] = d
	return nil
}

func (s *InMemoryStore) SetAvailability(_ context.Context, id domain.DonationID, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	d.Available = available
	s.donations[id] = d
	return nil
}

// Snapshot captures the current state and returns a restore function. The
// fulfillment memory runner uses it to emulate transaction rollback.
func (s *InMemoryStore) Snapshot() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[domain.DonationID]Donation, len(s.donations))
	for k, v := range s.donations {
		saved[k] = v
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.donations = saved
	}
}

func sortNewestFirst(ds []*Donation) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].CreatedAt.After(ds[j].CreatedAt)
	})
}
