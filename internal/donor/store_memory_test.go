package donor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/sentinel"
)

type DonorStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	base  time.Time
}

func (s *DonorStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.base = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
}

func TestDonorStoreSuite(t *testing.T) {
	suite.Run(t, new(DonorStoreSuite))
}

func (s *DonorStoreSuite) seed() *Donor {
	d := &Donor{
		ID:        domain.NewDonorID(),
		Name:      "Rahim",
		Email:     "rahim@example.com",
		CreatedAt: s.base,
	}
	s.Require().NoError(s.store.Save(s.ctx, d))
	return d
}

func (s *DonorStoreSuite) TestSaveAndGet() {
	d := s.seed()

	got, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(d.ID, got.ID)
	s.Equal("Rahim", got.Name)

	_, err = s.store.GetByID(s.ctx, domain.NewDonorID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *DonorStoreSuite) TestGetReturnsCopy() {
	d := s.seed()

	got, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	got.Name = "mutated"

	again, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal("Rahim", again.Name, "mutating a returned donor must not affect the store")
}

func (s *DonorStoreSuite) TestUpdateProfile() {
	d := s.seed()

	lat, lon := 23.8103, 90.4125
	d.Name = "Rahim Uddin"
	d.BloodType = domain.BloodONeg
	d.Location = "dhaka"
	d.Latitude = &lat
	d.Longitude = &lon
	s.Require().NoError(s.store.UpdateProfile(s.ctx, d))

	got, err := s.store.GetByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal("Rahim Uddin", got.Name)
	s.Equal(domain.BloodONeg, got.BloodType)
	s.Equal("dhaka", got.Location)

	s.Run("unknown donor is not found", func() {
		missing := &Donor{ID: domain.NewDonorID(), Name: "nobody"}
		s.Require().ErrorIs(s.store.UpdateProfile(s.ctx, missing), sentinel.ErrNotFound)
	})
}
