package donor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dropofhope/pkg/domain"
	dErrors "dropofhope/pkg/domain-errors"
	"dropofhope/pkg/platform/sentinel"
	"dropofhope/pkg/requestcontext"
)

// Service orchestrates donor profile reads and writes.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// RegisterInput carries the fields for a new donor profile.
type RegisterInput struct {
	Name             string
	Email            string
	BloodType        domain.BloodType
	LastDonationDate *time.Time
	Location         string
	Latitude         *float64
	Longitude        *float64
}

func (in RegisterInput) validate() error {
	switch {
	case in.Name == "":
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	case in.Email == "":
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	return nil
}

// Register creates a donor profile. Blood type and coordinates may be filled
// in later; until then the donor is excluded from proximity matching.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Donor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d := &Donor{
		ID:               domain.NewDonorID(),
		Name:             in.Name,
		Email:            in.Email,
		BloodType:        in.BloodType,
		LastDonationDate: in.LastDonationDate,
		Location:         in.Location,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		CreatedAt:        requestcontext.Now(ctx),
	}
	if err := s.store.Save(ctx, d); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to save donor")
	}
	s.logger.InfoContext(ctx, "donor registered",
		"request_id", requestcontext.RequestID(ctx),
		"donor_id", d.ID.String(),
	)
	return d, nil
}

// Get returns one donor profile.
func (s *Service) Get(ctx context.Context, id domain.DonorID) (*Donor, error) {
	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "donor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to fetch donor")
	}
	return d, nil
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Name             string
	BloodType        domain.BloodType
	LastDonationDate *time.Time
	Location         string
	Latitude         *float64
	Longitude        *float64
}

// UpdateProfile rewrites the matching-relevant profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id domain.DonorID, in UpdateProfileInput) (*Donor, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Name = in.Name
	d.BloodType = in.BloodType
	d.LastDonationDate = in.LastDonationDate
	d.Location = in.Location
	d.Latitude = in.Latitude
	d.Longitude = in.Longitude
	if err := s.store.UpdateProfile(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "donor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to update donor profile")
	}
	return d, nil
}
