//go:build integration

package fulfillment_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dropofhope/internal/donation"
	"dropofhope/internal/fulfillment"
	"dropofhope/internal/matching"
	"dropofhope/internal/request"
	"dropofhope/pkg/domain"
	"dropofhope/pkg/testutil/containers"
)

type PostgresFulfillmentSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	donations *donation.PostgresStore
	requests  *request.PostgresStore
	service   *fulfillment.Service
	ctx       context.Context
}

func TestPostgresFulfillmentSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresFulfillmentSuite))
}

func (s *PostgresFulfillmentSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.donations = donation.NewPostgres(s.postgres.DB)
	s.requests = request.NewPostgres(s.postgres.DB)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = fulfillment.NewService(s.donations, s.requests,
		fulfillment.NewSQLTxRunner(s.postgres.DB),
		matching.DefaultCompatibilityTable(), log, nil)
	s.ctx = context.Background()
}

func (s *PostgresFulfillmentSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(s.ctx))
}

func (s *PostgresFulfillmentSuite) seedDonation(bt domain.BloodType) *donation.Donation {
	d := &donation.Donation{
		ID:            domain.NewDonationID(),
		DonorID:       domain.NewDonorID(),
		DonorName:     "donor",
		BloodType:     bt,
		DonationDate:  time.Now().UTC(),
		ContactNumber: "01700000000",
		Location:      "dhaka",
		Available:     true,
		CreatedAt:     time.Now().UTC(),
	}
	s.Require().NoError(s.donations.Create(s.ctx, d))
	return d
}

func (s *PostgresFulfillmentSuite) seedRequest(bt domain.BloodType) *request.Request {
	r := &request.Request{
		ID:            domain.NewRequestID(),
		RequesterID:   domain.NewDonorID(),
		PatientName:   "patient",
		BloodType:     bt,
		UnitsRequired: 1,
		ContactNumber: "01700000000",
		Location:      "dhaka",
		RequiredDate:  time.Now().UTC(),
		CreatedAt:     time.Now().UTC(),
	}
	s.Require().NoError(s.requests.Create(s.ctx, r))
	return r
}

func (s *PostgresFulfillmentSuite) TestFulfillCommitsBothWrites() {
	don := s.seedDonation(domain.BloodONeg)
	req := s.seedRequest(domain.BloodAPos)

	s.Require().NoError(s.service.Fulfill(s.ctx, req.ID, don.ID))

	gotReq, err := s.requests.GetByID(s.ctx, req.ID)
	s.Require().NoError(err)
	s.True(gotReq.Fulfilled)
	s.Require().NotNil(gotReq.FulfilledBy)
	s.Equal(don.ID, *gotReq.FulfilledBy)

	gotDon, err := s.donations.GetByID(s.ctx, don.ID)
	s.Require().NoError(err)
	s.False(gotDon.Available)
}

func (s *PostgresFulfillmentSuite) TestIncompatibleRollsBack() {
	don := s.seedDonation(domain.BloodAPos)
	req := s.seedRequest(domain.BloodONeg)

	err := s.service.Fulfill(s.ctx, req.ID, don.ID)
	s.Require().ErrorIs(err, fulfillment.ErrIncompatibleBloodTypes)

	gotReq, err := s.requests.GetByID(s.ctx, req.ID)
	s.Require().NoError(err)
	s.False(gotReq.Fulfilled)

	gotDon, err := s.donations.GetByID(s.ctx, don.ID)
	s.Require().NoError(err)
	s.True(gotDon.Available)
}

func (s *PostgresFulfillmentSuite) TestConcurrentRequestsOneDonation() {
	don := s.seedDonation(domain.BloodONeg)

	const racers = 10
	reqs := make([]*request.Request, racers)
	for i := range reqs {
		reqs[i] = s.seedRequest(domain.BloodAPos)
	}

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := range reqs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.service.Fulfill(s.ctx, reqs[i].ID, don.ID)
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	s.Equal(1, wins, "exactly one racing fulfillment must win")

	var fulfilled int
	for _, r := range reqs {
		got, err := s.requests.GetByID(s.ctx, r.ID)
		s.Require().NoError(err)
		if got.Fulfilled {
			fulfilled++
		}
	}
	s.Equal(1, fulfilled)
}
