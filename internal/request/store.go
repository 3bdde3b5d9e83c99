package request

import (
	"context"

	"dropofhope/pkg/domain"
)

// Store is the persistence port for blood requests.
//
// Implementations return sentinel.ErrNotFound for missing rows and
// sentinel.ErrConflict when MarkFulfilled finds the request already
// fulfilled. MarkFulfilled must be atomic: two concurrent calls for the same
// id see exactly one success.
type Store interface {
	GetByID(ctx context.Context, id domain.RequestID) (*Request, error)
	// List returns requests ordered critical-first, then newest-first.
	List(ctx context.Context, f Filter) ([]*Request, error)
	// ListOpen returns every unfulfilled request, for matching scans.
	ListOpen(ctx context.Context) ([]*Request, error)
	Create(ctx context.Context, r *Request) error
	// MarkFulfilled transitions an open request to fulfilled with a reference
	// to the donation, failing with sentinel.ErrConflict when it is no longer
	// open.
	MarkFulfilled(ctx context.Context, id domain.RequestID, donationID domain.DonationID) error
	// FindByFulfillingDonation returns the request a donation served, or
	// sentinel.ErrNotFound.
	FindByFulfillingDonation(ctx context.Context, donationID domain.DonationID) (*Request, error)
}
