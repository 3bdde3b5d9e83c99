package donor

import (
	"context"

	"dropofhope/pkg/domain"
)

// Store is the persistence port for donor profiles. Implementations return
// sentinel.ErrNotFound for missing donors.
type Store interface {
	GetByID(ctx context.Context, id domain.DonorID) (*Donor, error)
	Save(ctx context.Context, d *Donor) error
	UpdateProfile(ctx context.Context, d *Donor) error
}
