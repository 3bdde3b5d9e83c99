package donation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dropofhope/internal/platform/metrics"
	"dropofhope/internal/request"
	"dropofhope/pkg/domain"
	dErrors "dropofhope/pkg/domain-errors"
	"dropofhope/pkg/platform/sentinel"
	"dropofhope/pkg/requestcontext"
)

// RequestLookup is the narrow slice of request persistence this service needs
// for the delete guard and donor history annotation.
type RequestLookup interface {
	FindByFulfillingDonation(ctx context.Context, id domain.DonationID) (*request.Request, error)
}

// Service orchestrates donation listing CRUD and the availability rules.
// Matching and fulfillment never go through it; they take stores directly.
type Service struct {
	store    Store
	requests RequestLookup
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewService(store Store, requests RequestLookup, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, requests: requests, logger: logger, metrics: m}
}

// CreateInput carries the caller-supplied fields for a new listing.
type CreateInput struct {
	DonorID          domain.DonorID
	DonorName        string
	BloodType        domain.BloodType
	DonationDate     time.Time
	ContactNumber    string
	Location         string
	Latitude         *float64
	Longitude        *float64
	LastDonationDate *time.Time
	AdditionalNotes  string
}

func (in CreateInput) validate() error {
	switch {
	case in.DonorID.IsNil():
		return dErrors.New(dErrors.CodeInvalidInput, "donor id is required")
	case in.DonorName == "":
		return dErrors.New(dErrors.CodeInvalidInput, "donor name is required")
	case !in.BloodType.IsValid():
		return dErrors.New(dErrors.CodeInvalidInput, "blood type is required")
	case in.DonationDate.IsZero():
		return dErrors.New(dErrors.CodeInvalidInput, "donation date is required")
	case in.ContactNumber == "":
		return dErrors.New(dErrors.CodeInvalidInput, "contact number is required")
	case in.Location == "":
		return dErrors.New(dErrors.CodeInvalidInput, "location is required")
	}
	return nil
}

// Create validates and persists a new listing. New listings start available.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Donation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d := &Donation{
		ID:               domain.NewDonationID(),
		DonorID:          in.DonorID,
		DonorName:        in.DonorName,
		BloodType:        in.BloodType,
		DonationDate:     in.DonationDate,
		ContactNumber:    in.ContactNumber,
		Location:         in.Location,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		LastDonationDate: in.LastDonationDate,
		AdditionalNotes:  in.AdditionalNotes,
		Available:        true,
		CreatedAt:        requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create donation")
	}
	s.metrics.IncrementDonationsCreated()
	s.logger.InfoContext(ctx, "donation created",
		"request_id", requestcontext.RequestID(ctx),
		"donation_id", d.ID.String(),
		"blood_group", d.BloodType.String(),
	)
	return d, nil
}

// Get returns one listing.
func (s *Service) Get(ctx context.Context, id domain.DonationID) (*Donation, error) {
	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "donation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to fetch donation")
	}
	return d, nil
}

// List returns available listings, optionally filtered by blood type.
func (s *Service) List(ctx context.Context, bloodType domain.BloodType) ([]*Donation, error) {
	out, err := s.store.ListAvailable(ctx, bloodType)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list donations")
	}
	return out, nil
}

// UpdateInput carries the editable core fields.
type UpdateInput struct {
	DonorName     string
	BloodType     domain.BloodType
	DonationDate  time.Time
	ContactNumber string
	Location      string
	Latitude      *float64
	Longitude     *float64
}

// Update rewrites a listing's core fields.
func (s *Service) Update(ctx context.Context, id domain.DonationID, in UpdateInput) error {
	if !in.BloodType.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "blood type is required")
	}
	d := &Donation{
		ID:            id,
		DonorName:     in.DonorName,
		BloodType:     in.BloodType,
		DonationDate:  in.DonationDate,
		ContactNumber: in.ContactNumber,
		Location:      in.Location,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
	}
	if err := s.store.Update(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "donation not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to update donation")
	}
	return nil
}

// Delete removes a listing unless a request references it as its fulfilling
// donation; fulfilled requests must keep their provenance.
func (s *Service) Delete(ctx context.Context, id domain.DonationID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	linked, err := s.requests.FindByFulfillingDonation(ctx, id)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to check donation linkage")
	}
	if linked != nil {
		return dErrors.Newf(dErrors.CodeConflict,
			"cannot delete: donation is linked to request %s", linked.ID.String())
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "donation not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to delete donation")
	}
	return nil
}

// SetAvailability toggles a listing. Marking available is refused while the
// donor's cooldown is active; marking unavailable is always allowed.
func (s *Service) SetAvailability(ctx context.Context, id domain.DonationID, available bool) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if available {
		if err := CheckCooldown(d, requestcontext.Now(ctx)); err != nil {
			return err
		}
	}
	if err := s.store.SetAvailability(ctx, id, available); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "donation not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to update availability")
	}
	return nil
}

// CanMarkAvailable answers the cooldown question without mutating anything.
func (s *Service) CanMarkAvailable(ctx context.Context, id domain.DonationID, now time.Time) (bool, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return CanMarkAvailable(d, now), nil
}

// History lists a donor's listings, newest donation first, annotated with the
// patient served when a fulfilled request references the listing.
func (s *Service) History(ctx context.Context, donorID domain.DonorID) ([]HistoryEntry, error) {
	ds, err := s.store.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list donation history")
	}
	entries := make([]HistoryEntry, 0, len(ds))
	for _, d := range ds {
		entry := HistoryEntry{Donation: d}
		linked, err := s.requests.FindByFulfillingDonation(ctx, d.ID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to annotate donation history")
		}
		if linked != nil {
			entry.UsedForPatient = linked.PatientName
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
