package donation

import (
	"context"

	"dropofhope/pkg/domain"
)

// Store is the persistence port for donation listings.
//
// Implementations return sentinel.ErrNotFound for missing rows and
// sentinel.ErrConflict when a guarded write (Reserve) finds its guard
// condition no longer true. Reserve must be atomic: two concurrent calls for
// the same id see exactly one success.
type Store interface {
	GetByID(ctx context.Context, id domain.DonationID) (*Donation, error)
	// ListAvailable returns available listings, most recently created first.
	// An empty bloodType means no filter.
	ListAvailable(ctx context.Context, bloodType domain.BloodType) ([]*Donation, error)
	ListByDonor(ctx context.Context, donorID domain.DonorID) ([]*Donation, error)
	Create(ctx context.Context, d *Donation) error
	// Update rewrites the caller-editable core fields.
	Update(ctx context.Context, d *Donation) error
	Delete(ctx context.Context, id domain.DonationID) error
	// Reserve flips an available donation to unavailable, failing with
	// sentinel.ErrConflict when it is not currently available.
	Reserve(ctx context.Context, id domain.DonationID) error
	SetAvailability(ctx context.Context, id domain.DonationID, available bool) error
}
