package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dropofhope/internal/donor"
	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/httputil"
	"dropofhope/pkg/requestcontext"
)

//go:generate mockgen -source=handlers_donors.go -destination=mocks/donor_service_mock.go -package=mocks

// DonorService defines the interface for donor profile operations.
type DonorService interface {
	Register(ctx context.Context, in donor.RegisterInput) (*donor.Donor, error)
	Get(ctx context.Context, id domain.DonorID) (*donor.Donor, error)
	UpdateProfile(ctx context.Context, id domain.DonorID, in donor.UpdateProfileInput) (*donor.Donor, error)
}

// DonorHandler wires donor profile endpoints to the donor service.
type DonorHandler struct {
	service DonorService
	logger  *slog.Logger
}

func NewDonorHandler(service DonorService, logger *slog.Logger) *DonorHandler {
	return &DonorHandler{service: service, logger: logger}
}

// Register mounts donor endpoints on the router.
func (h *DonorHandler) Register(r chi.Router) {
	r.Post("/donors", h.HandleRegister)
	r.Get("/donors/{id}", h.HandleGet)
	r.Put("/donors/{id}", h.HandleUpdateProfile)
}

// RegisterDonorRequest is the HTTP request body for POST /donors.
type RegisterDonorRequest struct {
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	BloodGroup       string     `json:"blood_group"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	Location         string     `json:"location"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`

	parsedBloodType domain.BloodType
}

// Validate validates and parses the request. Blood group is optional at
// registration time.
func (r *RegisterDonorRequest) Validate() error {
	if r.BloodGroup != "" {
		bt, err := domain.ParseBloodType(r.BloodGroup)
		if err != nil {
			return err
		}
		r.parsedBloodType = bt
	}
	return nil
}

func (h *DonorHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterDonorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d, err := h.service.Register(ctx, donor.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		BloodType:        req.parsedBloodType,
		LastDonationDate: req.LastDonationDate,
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "donor registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromDonor(d))
}

func (h *DonorHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseDonorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	d, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDonor(d))
}

// UpdateDonorProfileRequest is the HTTP request body for PUT /donors/{id}.
type UpdateDonorProfileRequest struct {
	Name             string     `json:"name"`
	BloodGroup       string     `json:"blood_group"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	Location         string     `json:"location"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`

	parsedBloodType domain.BloodType
}

// Validate validates and parses the request.
func (r *UpdateDonorProfileRequest) Validate() error {
	if r.BloodGroup != "" {
		bt, err := domain.ParseBloodType(r.BloodGroup)
		if err != nil {
			return err
		}
		r.parsedBloodType = bt
	}
	return nil
}

func (h *DonorHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseDonorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateDonorProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d, err := h.service.UpdateProfile(ctx, id, donor.UpdateProfileInput{
		Name:             req.Name,
		BloodType:        req.parsedBloodType,
		LastDonationDate: req.LastDonationDate,
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDonor(d))
}
