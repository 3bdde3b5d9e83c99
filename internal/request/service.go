package request

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dropofhope/internal/platform/metrics"
	"dropofhope/pkg/domain"
	dErrors "dropofhope/pkg/domain-errors"
	"dropofhope/pkg/platform/sentinel"
	"dropofhope/pkg/requestcontext"
)

// Service orchestrates blood request CRUD. Fulfillment is deliberately not
// here; the coordinator owns that write path.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, logger: logger, metrics: m}
}

// CreateInput carries the caller-supplied fields for a new request.
type CreateInput struct {
	RequesterID     domain.DonorID
	PatientName     string
	BloodType       domain.BloodType
	UnitsRequired   int
	ContactNumber   string
	Location        string
	Latitude        *float64
	Longitude       *float64
	RequiredDate    time.Time
	HospitalName    string
	HospitalAddress string
	Critical        bool
	AdditionalNotes string
}

func (in CreateInput) validate() error {
	switch {
	case in.RequesterID.IsNil():
		return dErrors.New(dErrors.CodeInvalidInput, "requester id is required")
	case in.PatientName == "":
		return dErrors.New(dErrors.CodeInvalidInput, "patient name is required")
	case !in.BloodType.IsValid():
		return dErrors.New(dErrors.CodeInvalidInput, "blood type is required")
	case in.ContactNumber == "":
		return dErrors.New(dErrors.CodeInvalidInput, "contact number is required")
	case in.Location == "":
		return dErrors.New(dErrors.CodeInvalidInput, "location is required")
	case in.RequiredDate.IsZero():
		return dErrors.New(dErrors.CodeInvalidInput, "required date is required")
	}
	return nil
}

// Create validates and persists a new request. Units defaults to 1; new
// requests start open.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Request, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	units := in.UnitsRequired
	if units <= 0 {
		units = 1
	}
	r := &Request{
		ID:              domain.NewRequestID(),
		RequesterID:     in.RequesterID,
		PatientName:     in.PatientName,
		BloodType:       in.BloodType,
		UnitsRequired:   units,
		ContactNumber:   in.ContactNumber,
		Location:        in.Location,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		RequiredDate:    in.RequiredDate,
		HospitalName:    in.HospitalName,
		HospitalAddress: in.HospitalAddress,
		Critical:        in.Critical,
		AdditionalNotes: in.AdditionalNotes,
		CreatedAt:       requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create request")
	}
	s.metrics.IncrementRequestsCreated()
	s.logger.InfoContext(ctx, "blood request created",
		"request_id", requestcontext.RequestID(ctx),
		"blood_request_id", r.ID.String(),
		"blood_group", r.BloodType.String(),
		"critical", r.Critical,
	)
	return r, nil
}

// Get returns one request.
func (s *Service) Get(ctx context.Context, id domain.RequestID) (*Request, error) {
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to fetch request")
	}
	return r, nil
}

// List returns requests matching the filter, critical-first then newest.
func (s *Service) List(ctx context.Context, f Filter) ([]*Request, error) {
	out, err := s.store.List(ctx, f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list requests")
	}
	return out, nil
}
