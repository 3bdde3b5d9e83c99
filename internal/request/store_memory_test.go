package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/sentinel"
)

type RequestStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	base  time.Time
}

func (s *RequestStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.base = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
}

func TestRequestStoreSuite(t *testing.T) {
	suite.Run(t, new(RequestStoreSuite))
}

func (s *RequestStoreSuite) seed(bt domain.BloodType, critical, fulfilled bool, age time.Duration) *Request {
	r := &Request{
		ID:          domain.NewRequestID(),
		RequesterID: domain.NewDonorID(),
		PatientName: "patient",
		BloodType:   bt,
		Critical:    critical,
		Fulfilled:   fulfilled,
		CreatedAt:   s.base.Add(-age),
	}
	s.Require().NoError(s.store.Create(s.ctx, r))
	return r
}

func (s *RequestStoreSuite) TestCreateAndGet() {
	r := s.seed(domain.BloodAPos, false, false, 0)

	got, err := s.store.GetByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(r.ID, got.ID)

	_, err = s.store.GetByID(s.ctx, domain.NewRequestID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RequestStoreSuite) TestListOrderingAndFilters() {
	critical := s.seed(domain.BloodAPos, true, false, 48*time.Hour)
	newest := s.seed(domain.BloodAPos, false, false, time.Hour)
	oldest := s.seed(domain.BloodBNeg, false, false, 72*time.Hour)
	fulfilled := s.seed(domain.BloodAPos, false, true, time.Minute)

	s.Run("critical first, then newest", func() {
		out, err := s.store.List(s.ctx, Filter{})
		s.Require().NoError(err)
		s.Require().Len(out, 4)
		s.Equal(critical.ID, out[0].ID)
		s.Equal(fulfilled.ID, out[1].ID)
		s.Equal(newest.ID, out[2].ID)
		s.Equal(oldest.ID, out[3].ID)
	})

	s.Run("open only", func() {
		out, err := s.store.ListOpen(s.ctx)
		s.Require().NoError(err)
		s.Len(out, 3)
	})

	s.Run("fulfilled only", func() {
		t := true
		out, err := s.store.List(s.ctx, Filter{Fulfilled: &t})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(fulfilled.ID, out[0].ID)
	})

	s.Run("blood type filter", func() {
		out, err := s.store.List(s.ctx, Filter{BloodType: domain.BloodBNeg})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(oldest.ID, out[0].ID)
	})

	s.Run("critical only", func() {
		out, err := s.store.List(s.ctx, Filter{CriticalOnly: true})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(critical.ID, out[0].ID)
	})
}

func (s *RequestStoreSuite) TestMarkFulfilled() {
	r := s.seed(domain.BloodAPos, false, false, 0)
	donationID := domain.NewDonationID()

	s.Require().NoError(s.store.MarkFulfilled(s.ctx, r.ID, donationID))

	got, err := s.store.GetByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.True(got.Fulfilled)
	s.Require().NotNil(got.FulfilledBy)
	s.Equal(donationID, *got.FulfilledBy)

	s.Run("second mark conflicts", func() {
		err := s.store.MarkFulfilled(s.ctx, r.ID, domain.NewDonationID())
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("missing request is not found", func() {
		err := s.store.MarkFulfilled(s.ctx, domain.NewRequestID(), donationID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *RequestStoreSuite) TestFindByFulfillingDonation() {
	r := s.seed(domain.BloodAPos, false, false, 0)
	donationID := domain.NewDonationID()
	s.Require().NoError(s.store.MarkFulfilled(s.ctx, r.ID, donationID))

	got, err := s.store.FindByFulfillingDonation(s.ctx, donationID)
	s.Require().NoError(err)
	s.Equal(r.ID, got.ID)

	_, err = s.store.FindByFulfillingDonation(s.ctx, domain.NewDonationID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
