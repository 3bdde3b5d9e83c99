package matching

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"dropofhope/internal/donation"
	"dropofhope/internal/donor"
	"dropofhope/internal/matching/metrics"
	"dropofhope/internal/request"
	"dropofhope/pkg/domain"
	dErrors "dropofhope/pkg/domain-errors"
	"dropofhope/pkg/platform/sentinel"
	"dropofhope/pkg/requestcontext"
)

// DonationStore is the slice of donation persistence matching reads.
type DonationStore interface {
	ListAvailable(ctx context.Context, bloodType domain.BloodType) ([]*donation.Donation, error)
}

// RequestStore is the slice of request persistence matching reads.
type RequestStore interface {
	GetByID(ctx context.Context, id domain.RequestID) (*request.Request, error)
	ListOpen(ctx context.Context) ([]*request.Request, error)
}

// DonorStore is the slice of donor persistence matching reads.
type DonorStore interface {
	GetByID(ctx context.Context, id domain.DonorID) (*donor.Donor, error)
}

// Service orchestrates match queries: it loads the anchor entity and a fresh
// snapshot of the opposite side in parallel, then hands both to the ranker.
// Results are recomputed on every call; nothing is cached and nothing is
// written.
type Service struct {
	ranker    *Ranker
	donations DonationStore
	requests  RequestStore
	donors    DonorStore
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewService(ranker *Ranker, donations DonationStore, requests RequestStore, donors DonorStore,
	logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		ranker:    ranker,
		donations: donations,
		requests:  requests,
		donors:    donors,
		logger:    logger,
		metrics:   m,
	}
}

// RequestMatches is the donor-side result: the anchor request plus its ranked
// donation candidates.
type RequestMatches struct {
	Request *request.Request
	Matches []DonorCandidate
}

// FindMatchesForRequest returns ranked donation candidates for a request.
func (s *Service) FindMatchesForRequest(ctx context.Context, id domain.RequestID) (*RequestMatches, error) {
	var (
		anchor     *request.Request
		candidates []*donation.Donation
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		req, err := s.requests.GetByID(gCtx, id)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "request not found")
			}
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load request")
		}
		anchor = req
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		ds, err := s.donations.ListAvailable(gCtx, "")
		s.metrics.ObserveScanLatency("donations", time.Since(start))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to scan donations")
		}
		candidates = ds
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := s.ranker.MatchDonorsForRequest(anchor, candidates)
	s.metrics.ObserveMatches("donations", len(matches))
	s.logger.DebugContext(ctx, "matched donors for request",
		"request_id", requestcontext.RequestID(ctx),
		"blood_request_id", id.String(),
		"candidates", len(candidates),
		"matches", len(matches),
	)
	return &RequestMatches{Request: anchor, Matches: matches}, nil
}

// FindMatchesForDonor returns ranked open requests the donor can serve.
// Fails with ErrIncompleteProfile when the donor profile lacks a blood type
// or complete coordinates.
func (s *Service) FindMatchesForDonor(ctx context.Context, id domain.DonorID) ([]RequestCandidate, error) {
	var (
		anchor     *donor.Donor
		candidates []*request.Request
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.donors.GetByID(gCtx, id)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "donor not found")
			}
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load donor")
		}
		anchor = d
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		rs, err := s.requests.ListOpen(gCtx)
		s.metrics.ObserveScanLatency("requests", time.Since(start))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to scan requests")
		}
		candidates = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches, err := s.ranker.MatchRequestsForDonor(anchor, candidates)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveMatches("requests", len(matches))
	s.logger.DebugContext(ctx, "matched requests for donor",
		"request_id", requestcontext.RequestID(ctx),
		"donor_id", id.String(),
		"candidates", len(candidates),
		"matches", len(matches),
	)
	return matches, nil
}
