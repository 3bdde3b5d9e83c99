// Package fulfillment owns the one cross-entity state transition in the
// system: reserving a donation against a request. Everything happens inside a
// single transactional scope with re-reads, so two concurrent attempts on the
// same donation or request cannot both commit.
package fulfillment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dropofhope/internal/donation"
	"dropofhope/internal/fulfillment/metrics"
	"dropofhope/internal/matching"
	"dropofhope/internal/request"
	"dropofhope/pkg/domain"
	dErrors "dropofhope/pkg/domain-errors"
	"dropofhope/pkg/platform/sentinel"
	"dropofhope/pkg/requestcontext"
)

// Deterministic fulfillment failures. Never retried: the same inputs yield
// the same answer.
var (
	// ErrDonationUnavailable: the donation does not exist or is already
	// reserved.
	ErrDonationUnavailable = dErrors.New(dErrors.CodeConflict, "donation not available")
	// ErrRequestAlreadyResolved: the request does not exist or is already
	// fulfilled.
	ErrRequestAlreadyResolved = dErrors.New(dErrors.CodeConflict, "request not found or already fulfilled")
	// ErrIncompatibleBloodTypes: both records exist and are open/available
	// but the donor type cannot serve the recipient type.
	ErrIncompatibleBloodTypes = dErrors.New(dErrors.CodeInvariantViolation, "incompatible blood types")
)

// DonationStore is the slice of donation persistence the coordinator writes.
type DonationStore interface {
	GetByID(ctx context.Context, id domain.DonationID) (*donation.Donation, error)
	Reserve(ctx context.Context, id domain.DonationID) error
}

// RequestStore is the slice of request persistence the coordinator writes.
type RequestStore interface {
	GetByID(ctx context.Context, id domain.RequestID) (*request.Request, error)
	MarkFulfilled(ctx context.Context, id domain.RequestID, donationID domain.DonationID) error
}

// Service executes the fulfillment transition.
type Service struct {
	donations DonationStore
	requests  RequestStore
	tx        TxRunner
	table     matching.CompatibilityTable
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewService(donations DonationStore, requests RequestStore, runner TxRunner,
	table matching.CompatibilityTable, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		donations: donations,
		requests:  requests,
		tx:        runner,
		table:     table,
		logger:    logger,
		metrics:   m,
	}
}

// Fulfill reserves the donation for the request.
//
// Both entities are re-read inside the transaction rather than trusted from
// the caller: the second of two racing attempts observes the already-mutated
// state and fails cleanly instead of double-committing. On success the
// request is fulfilled with a reference to the donation and the donation is
// reserved, committed together. On any failure nothing is persisted.
//
// Returns ErrDonationUnavailable, ErrRequestAlreadyResolved, or
// ErrIncompatibleBloodTypes for deterministic refusals, and a
// CodeUnavailable error for transient store failures the caller may retry.
func (s *Service) Fulfill(ctx context.Context, requestID domain.RequestID, donationID domain.DonationID) error {
	start := time.Now()
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		don, err := s.donations.GetByID(ctx, donationID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return ErrDonationUnavailable
			}
			return transient(err)
		}
		if !don.Available {
			return ErrDonationUnavailable
		}

		req, err := s.requests.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return ErrRequestAlreadyResolved
			}
			return transient(err)
		}
		if req.Fulfilled {
			return ErrRequestAlreadyResolved
		}

		if !s.table.IsCompatible(req.BloodType, don.BloodType) {
			return dErrors.Wrap(ErrIncompatibleBloodTypes, dErrors.CodeInvariantViolation,
				req.BloodType.String()+" cannot receive "+don.BloodType.String())
		}

		if err := s.requests.MarkFulfilled(ctx, requestID, donationID); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return ErrRequestAlreadyResolved
			}
			return transient(err)
		}
		if err := s.donations.Reserve(ctx, donationID); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return ErrDonationUnavailable
			}
			return transient(err)
		}
		return nil
	})
	s.metrics.ObserveFulfillLatency(time.Since(start))
	s.metrics.IncrementOutcome(outcomeLabel(err))

	if err != nil {
		s.logger.WarnContext(ctx, "fulfillment refused",
			"request_id", requestcontext.RequestID(ctx),
			"blood_request_id", requestID.String(),
			"donation_id", donationID.String(),
			"error", err.Error(),
		)
		return err
	}
	s.logger.InfoContext(ctx, "request fulfilled",
		"request_id", requestcontext.RequestID(ctx),
		"blood_request_id", requestID.String(),
		"donation_id", donationID.String(),
	)
	return nil
}

func transient(err error) error {
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "fulfillment transaction failed")
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "fulfilled"
	case errors.Is(err, ErrDonationUnavailable):
		return "donation_unavailable"
	case errors.Is(err, ErrRequestAlreadyResolved):
		return "request_resolved"
	case errors.Is(err, ErrIncompatibleBloodTypes):
		return "incompatible"
	default:
		return "transient"
	}
}
