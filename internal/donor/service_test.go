package donor

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dropofhope/pkg/domain"
	dErrors "dropofhope/pkg/domain-errors"
	"dropofhope/pkg/platform/sentinel"
	"dropofhope/pkg/requestcontext"
)

type DonorServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	service *Service
	ctx     context.Context
	now     time.Time
}

func (s *DonorServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.store, log)
	s.now = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func TestDonorServiceSuite(t *testing.T) {
	suite.Run(t, new(DonorServiceSuite))
}

func (s *DonorServiceSuite) register() *Donor {
	d, err := s.service.Register(s.ctx, RegisterInput{
		Name:  "Rahim",
		Email: "rahim@example.com",
	})
	s.Require().NoError(err)
	return d
}

func (s *DonorServiceSuite) TestRegister() {
	s.Run("valid input gets an id and pinned time", func() {
		d := s.register()
		s.False(d.ID.IsNil())
		s.Equal(s.now, d.CreatedAt)

		got, err := s.service.Get(s.ctx, d.ID)
		s.Require().NoError(err)
		s.Equal("Rahim", got.Name)
		s.Equal("rahim@example.com", got.Email)
	})

	s.Run("missing fields are rejected", func() {
		_, err := s.service.Register(s.ctx, RegisterInput{Email: "a@b.c"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = s.service.Register(s.ctx, RegisterInput{Name: "Rahim"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *DonorServiceSuite) TestGetUnknownDonor() {
	_, err := s.service.Get(s.ctx, domain.NewDonorID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *DonorServiceSuite) TestUpdateProfile() {
	d := s.register()

	lat, lon := 23.8103, 90.4125
	last := s.now.AddDate(0, -4, 0)
	updated, err := s.service.UpdateProfile(s.ctx, d.ID, UpdateProfileInput{
		Name:             "Rahim Uddin",
		BloodType:        domain.BloodONeg,
		LastDonationDate: &last,
		Location:         "dhaka",
		Latitude:         &lat,
		Longitude:        &lon,
	})
	s.Require().NoError(err)
	s.Equal("Rahim Uddin", updated.Name)

	s.Run("every field survives the round-trip", func() {
		got, err := s.service.Get(s.ctx, d.ID)
		s.Require().NoError(err)
		s.Equal("Rahim Uddin", got.Name)
		s.Equal(domain.BloodONeg, got.BloodType)
		s.Require().NotNil(got.LastDonationDate)
		s.Equal(last, *got.LastDonationDate)
		s.Equal("dhaka", got.Location)
		pos, ok := got.Position()
		s.Require().True(ok)
		s.Equal(lat, pos.Latitude)
		s.Equal(lon, pos.Longitude)
	})

	s.Run("unknown donor maps to not found", func() {
		_, err := s.service.UpdateProfile(s.ctx, domain.NewDonorID(), UpdateProfileInput{Name: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
