package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dropofhope/internal/request"
	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/httputil"
	"dropofhope/pkg/requestcontext"
)

//go:generate mockgen -source=handlers_requests.go -destination=mocks/request_service_mock.go -package=mocks

// RequestService defines the interface for blood request operations.
type RequestService interface {
	Create(ctx context.Context, in request.CreateInput) (*request.Request, error)
	Get(ctx context.Context, id domain.RequestID) (*request.Request, error)
	List(ctx context.Context, f request.Filter) ([]*request.Request, error)
}

// FulfillmentService defines the interface for the fulfillment transition.
type FulfillmentService interface {
	Fulfill(ctx context.Context, requestID domain.RequestID, donationID domain.DonationID) error
}

// RequestHandler wires blood request endpoints to the request and
// fulfillment services.
type RequestHandler struct {
	service     RequestService
	fulfillment FulfillmentService
	logger      *slog.Logger
}

func NewRequestHandler(service RequestService, fulfillment FulfillmentService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{service: service, fulfillment: fulfillment, logger: logger}
}

// Register mounts request endpoints on the router.
func (h *RequestHandler) Register(r chi.Router) {
	r.Get("/requests", h.HandleList)
	r.Post("/requests", h.HandleCreate)
	r.Get("/requests/{id}", h.HandleGet)
	r.Post("/requests/{id}/fulfill", h.HandleFulfill)
}

// CreateRequestRequest is the HTTP request body for POST /requests.
type CreateRequestRequest struct {
	RequesterID     string    `json:"requester_id"`
	PatientName     string    `json:"patient_name"`
	BloodGroup      string    `json:"blood_group"`
	UnitsRequired   int       `json:"units_required"`
	ContactNumber   string    `json:"contact_number"`
	Location        string    `json:"location"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	RequiredDate    time.Time `json:"required_date"`
	HospitalName    string    `json:"hospital_name"`
	HospitalAddress string    `json:"hospital_address"`
	Critical        bool      `json:"is_critical"`
	AdditionalNotes string    `json:"additional_notes"`

	parsedRequesterID domain.DonorID
	parsedBloodType   domain.BloodType
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateRequestRequest) Validate() error {
	requesterID, err := domain.ParseDonorID(r.RequesterID)
	if err != nil {
		return err
	}
	r.parsedRequesterID = requesterID

	bt, err := domain.ParseBloodType(r.BloodGroup)
	if err != nil {
		return err
	}
	r.parsedBloodType = bt
	return nil
}

func (h *RequestHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateRequestRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, request.CreateInput{
		RequesterID:     req.parsedRequesterID,
		PatientName:     req.PatientName,
		BloodType:       req.parsedBloodType,
		UnitsRequired:   req.UnitsRequired,
		ContactNumber:   req.ContactNumber,
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		RequiredDate:    req.RequiredDate,
		HospitalName:    req.HospitalName,
		HospitalAddress: req.HospitalAddress,
		Critical:        req.Critical,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "request creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromRequest(created))
}

func (h *RequestHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var f request.Filter
	switch q.Get("fulfilled") {
	case "true":
		t := true
		f.Fulfilled = &t
	case "false":
		fa := false
		f.Fulfilled = &fa
	}
	if raw := q.Get("bloodGroup"); raw != "" {
		bt, err := domain.ParseBloodType(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		f.BloodType = bt
	}
	f.CriticalOnly = q.Get("critical") == "true"

	rs, err := h.service.List(ctx, f)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequests(rs))
}

func (h *RequestHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequest(req))
}

// FulfillRequest is the HTTP request body for POST /requests/{id}/fulfill.
type FulfillRequest struct {
	DonationID string `json:"donation_id"`

	parsedDonationID domain.DonationID
}

// Validate validates and parses the request.
func (r *FulfillRequest) Validate() error {
	donationID, err := domain.ParseDonationID(r.DonationID)
	if err != nil {
		return err
	}
	r.parsedDonationID = donationID
	return nil
}

func (h *RequestHandler) HandleFulfill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	id, err := domain.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[FulfillRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.fulfillment.Fulfill(ctx, id, req.parsedDonationID); err != nil {
		h.logger.WarnContext(ctx, "fulfillment rejected",
			"request_id", requestID,
			"blood_request_id", id.String(),
			"donation_id", req.parsedDonationID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "request fulfilled",
		"request_id", requestID,
		"blood_request_id", id.String(),
		"donation_id", req.parsedDonationID.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "fulfilled"})
}
