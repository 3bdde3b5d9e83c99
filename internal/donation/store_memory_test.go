package donation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/sentinel"
)

type DonationStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	base  time.Time
}

func (s *DonationStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.base = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
}

func TestDonationStoreSuite(t *testing.T) {
	suite.Run(t, new(DonationStoreSuite))
}

func (s *DonationStoreSuite) seed(bt domain.BloodType, available bool, age time.Duration) *Donation {
	d := &Donation{
		ID:           domain.NewDonationID(),
		DonorID:      domain.NewDonorID(),
		DonorName:    "donor",
		BloodType:    bt,
		DonationDate: s.base.Add(-age),
		Available:    available,
		CreatedAt:    s.base.Add(-age),
	}
	s.Require().NoError(s.store.Create(s.ctx, d))
	return d
}

func (s *DonationStoreSuite) TestCreateAndGet() {
	d := s.seed(domain.BloodAPos, true, 0)

	got, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(d.ID, got.ID)
	s.Equal(domain.BloodAPos, got.BloodType)

	_, err = s.store.GetByID(s.ctx, domain.NewDonationID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *DonationStoreSuite) TestGetReturnsCopy() {
	d := s.seed(domain.BloodAPos, true, 0)

	got, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	got.Available = false

	again, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.True(again.Available, "mutating a returned donation must not affect the store")
}

func (s *DonationStoreSuite) TestListAvailable() {
	newest := s.seed(domain.BloodAPos, true, time.Hour)
	oldest := s.seed(domain.BloodAPos, true, 48*time.Hour)
	s.seed(domain.BloodAPos, false, time.Minute)
	other := s.seed(domain.BloodBNeg, true, 2*time.Hour)

	s.Run("newest first, unavailable excluded", func() {
		out, err := s.store.ListAvailable(s.ctx, "")
		s.Require().NoError(err)
		s.Require().Len(out, 3)
		s.Equal(newest.ID, out[0].ID)
		s.Equal(other.ID, out[1].ID)
		s.Equal(oldest.ID, out[2].ID)
	})

	s.Run("blood type filter", func() {
		out, err := s.store.ListAvailable(s.ctx, domain.BloodBNeg)
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(other.ID, out[0].ID)
	})
}

func (s *DonationStoreSuite) TestListByDonor() {
	d1 := s.seed(domain.BloodAPos, true, 48*time.Hour)
	d2 := &Donation{
		ID:           domain.NewDonationID(),
		DonorID:      d1.DonorID,
		BloodType:    domain.BloodAPos,
		DonationDate: s.base,
		CreatedAt:    s.base,
	}
	s.Require().NoError(s.store.Create(s.ctx, d2))
	s.seed(domain.BloodAPos, true, time.Hour) // different donor

	out, err := s.store.ListByDonor(s.ctx, d1.DonorID)
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Equal(d2.ID, out[0].ID, "most recent donation date first")
	s.Equal(d1.ID, out[1].ID)
}

func (s *DonationStoreSuite) TestReserve() {
	d := s.seed(domain.BloodAPos, true, 0)

	s.Require().NoError(s.store.Reserve(s.ctx, d.ID))

	s.Run("second reserve conflicts", func() {
		s.Require().ErrorIs(s.store.Reserve(s.ctx, d.ID), sentinel.ErrConflict)
	})

	s.Run("missing donation is not found", func() {
		s.Require().ErrorIs(s.store.Reserve(s.ctx, domain.NewDonationID()), sentinel.ErrNotFound)
	})
}

func (s *DonationStoreSuite) TestUpdatePreservesAvailability() {
	d := s.seed(domain.BloodAPos, true, 0)
	s.Require().NoError(s.store.Reserve(s.ctx, d.ID))

	d.DonorName = "renamed"
	s.Require().NoError(s.store.Update(s.ctx, d))

	got, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal("renamed", got.DonorName)
	s.False(got.Available, "core-field update must not resurrect availability")
}

func (s *DonationStoreSuite) TestDelete() {
	d := s.seed(domain.BloodAPos, true, 0)
	s.Require().NoError(s.store.Delete(s.ctx, d.ID))
	_, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	s.Require().ErrorIs(s.store.Delete(s.ctx, d.ID), sentinel.ErrNotFound)
}

func (s *DonationStoreSuite) TestSnapshotRestore() {
	d := s.seed(domain.BloodAPos, true, 0)

	restore := s.store.Snapshot()
	s.Require().NoError(s.store.Reserve(s.ctx, d.ID))
	restore()

	got, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.True(got.Available)
}
