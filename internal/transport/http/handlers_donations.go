package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dropofhope/internal/donation"
	"dropofhope/pkg/domain"
	dErrors "dropofhope/pkg/domain-errors"
	"dropofhope/pkg/platform/httputil"
	"dropofhope/pkg/requestcontext"
)

//go:generate mockgen -source=handlers_donations.go -destination=mocks/donation_service_mock.go -package=mocks

// DonationService defines the interface for donation listing operations.
type DonationService interface {
	Create(ctx context.Context, in donation.CreateInput) (*donation.Donation, error)
	Get(ctx context.Context, id domain.DonationID) (*donation.Donation, error)
	List(ctx context.Context, bloodType domain.BloodType) ([]*donation.Donation, error)
	Update(ctx context.Context, id domain.DonationID, in donation.UpdateInput) error
	Delete(ctx context.Context, id domain.DonationID) error
	SetAvailability(ctx context.Context, id domain.DonationID, available bool) error
	History(ctx context.Context, donorID domain.DonorID) ([]donation.HistoryEntry, error)
}

// DonationHandler wires donation endpoints to the donation service.
type DonationHandler struct {
	service DonationService
	logger  *slog.Logger
}

func NewDonationHandler(service DonationService, logger *slog.Logger) *DonationHandler {
	return &DonationHandler{service: service, logger: logger}
}

// Register mounts donation endpoints on the router.
func (h *DonationHandler) Register(r chi.Router) {
	r.Get("/donations", h.HandleList)
	r.Post("/donations", h.HandleCreate)
	r.Get("/donations/{id}", h.HandleGet)
	r.Put("/donations/{id}", h.HandleUpdate)
	r.Delete("/donations/{id}", h.HandleDelete)
	r.Patch("/donations/{id}/availability", h.HandleSetAvailability)
	r.Get("/donations/history/{donorID}", h.HandleHistory)
}

// CreateDonationRequest is the HTTP request body for POST /donations.
type CreateDonationRequest struct {
	DonorID          string     `json:"donor_id"`
	DonorName        string     `json:"donor_name"`
	BloodGroup       string     `json:"blood_group"`
	DonationDate     time.Time  `json:"donation_date"`
	ContactNumber    string     `json:"contact_number"`
	Location         string     `json:"location"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	AdditionalNotes  string     `json:"additional_notes"`

	parsedDonorID   domain.DonorID
	parsedBloodType domain.BloodType
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateDonationRequest) Validate() error {
	donorID, err := domain.ParseDonorID(r.DonorID)
	if err != nil {
		return err
	}
	r.parsedDonorID = donorID

	bt, err := domain.ParseBloodType(r.BloodGroup)
	if err != nil {
		return err
	}
	r.parsedBloodType = bt
	return nil
}

func (h *DonationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateDonationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d, err := h.service.Create(ctx, donation.CreateInput{
		DonorID:          req.parsedDonorID,
		DonorName:        req.DonorName,
		BloodType:        req.parsedBloodType,
		DonationDate:     req.DonationDate,
		ContactNumber:    req.ContactNumber,
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		LastDonationDate: req.LastDonationDate,
		AdditionalNotes:  req.AdditionalNotes,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "donation creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromDonation(d))
}

func (h *DonationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var bt domain.BloodType
	if raw := r.URL.Query().Get("bloodGroup"); raw != "" {
		parsed, err := domain.ParseBloodType(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		bt = parsed
	}

	ds, err := h.service.List(ctx, bt)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDonations(ds))
}

func (h *DonationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseDonationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	d, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDonation(d))
}

// UpdateDonationRequest is the HTTP request body for PUT /donations/{id}.
type UpdateDonationRequest struct {
	DonorName     string    `json:"donor_name"`
	BloodGroup    string    `json:"blood_group"`
	DonationDate  time.Time `json:"donation_date"`
	ContactNumber string    `json:"contact_number"`
	Location      string    `json:"location"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`

	parsedBloodType domain.BloodType
}

// Validate validates and parses the request.
func (r *UpdateDonationRequest) Validate() error {
	bt, err := domain.ParseBloodType(r.BloodGroup)
	if err != nil {
		return err
	}
	r.parsedBloodType = bt
	return nil
}

func (h *DonationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseDonationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateDonationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Update(ctx, id, donation.UpdateInput{
		DonorName:     req.DonorName,
		BloodType:     req.parsedBloodType,
		DonationDate:  req.DonationDate,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *DonationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseDonationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "donation deletion refused",
			"request_id", requestcontext.RequestID(ctx),
			"donation_id", id.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SetAvailabilityRequest is the HTTP request body for PATCH /donations/{id}/availability.
type SetAvailabilityRequest struct {
	Available *bool `json:"available"`
}

// Validate validates the request.
func (r *SetAvailabilityRequest) Validate() error {
	if r.Available == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "available is required")
	}
	return nil
}

func (h *DonationHandler) HandleSetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseDonationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[SetAvailabilityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetAvailability(ctx, id, *req.Available); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *DonationHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorID, err := domain.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entries, err := h.service.History(ctx, donorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromHistory(entries))
}
