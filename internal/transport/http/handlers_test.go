package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dropofhope/internal/donation"
	"dropofhope/internal/fulfillment"
	"dropofhope/internal/matching"
	"dropofhope/internal/request"
	"dropofhope/internal/transport/http/mocks"
	"dropofhope/pkg/domain"
	dErrors "dropofhope/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(reg interface{ Register(chi.Router) }) *chi.Mux {
	r := chi.NewRouter()
	reg.Register(r)
	return r
}

func floatPtr(f float64) *float64 { return &f }

func TestDonationHandler_Create_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	donorID := domain.NewDonorID()
	created := &donation.Donation{
		ID:        domain.NewDonationID(),
		DonorID:   donorID,
		DonorName: "Rahim",
		BloodType: domain.BloodAPos,
		Available: true,
		CreatedAt: time.Now(),
	}

	svc := mocks.NewMockDonationService(ctrl)
	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(created, nil).
		Times(1)

	router := newTestRouter(NewDonationHandler(svc, testLogger()))

	body, err := json.Marshal(map[string]any{
		"donor_id":       donorID.String(),
		"donor_name":     "Rahim",
		"blood_group":    "A+",
		"donation_date":  time.Now().Format(time.RFC3339),
		"contact_number": "01700000000",
		"location":       "dhaka",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/donations", bytes.NewReader(body)))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp DonationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, created.ID.String(), resp.ID)
	assert.Equal(t, "A+", resp.BloodGroup)
	assert.True(t, resp.Available)
}

func TestDonationHandler_Create_InvalidBloodGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockDonationService(ctrl) // service must not be called

	router := newTestRouter(NewDonationHandler(svc, testLogger()))

	body, _ := json.Marshal(map[string]any{
		"donor_id":    domain.NewDonorID().String(),
		"blood_group": "Z+",
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/donations", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "invalid_input", resp["error"])
}

func TestDonationHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := domain.NewDonationID()
	svc := mocks.NewMockDonationService(ctrl)
	svc.EXPECT().
		Get(gomock.Any(), id).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "donation not found")).
		Times(1)

	router := newTestRouter(NewDonationHandler(svc, testLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/donations/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDonationHandler_Get_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockDonationService(ctrl)
	router := newTestRouter(NewDonationHandler(svc, testLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/donations/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDonationHandler_List_PassesBloodGroupFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockDonationService(ctrl)
	svc.EXPECT().
		List(gomock.Any(), domain.BloodONeg).
		Return([]*donation.Donation{}, nil).
		Times(1)

	router := newTestRouter(NewDonationHandler(svc, testLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/donations?bloodGroup=O-", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String(), "empty result must be a JSON array, not null")
}

func TestDonationHandler_SetAvailability_RequiresField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockDonationService(ctrl)
	router := newTestRouter(NewDonationHandler(svc, testLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("PATCH",
		"/donations/"+domain.NewDonationID().String()+"/availability",
		bytes.NewReader([]byte(`{}`))))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandler_Fulfill(t *testing.T) {
	reqID := domain.NewRequestID()
	donID := domain.NewDonationID()

	fulfillBody := func() io.Reader {
		b, _ := json.Marshal(map[string]string{"donation_id": donID.String()})
		return bytes.NewReader(b)
	}

	t.Run("happy path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reqSvc := mocks.NewMockRequestService(ctrl)
		fulfillSvc := mocks.NewMockFulfillmentService(ctrl)
		fulfillSvc.EXPECT().
			Fulfill(gomock.Any(), reqID, donID).
			Return(nil).
			Times(1)

		router := newTestRouter(NewRequestHandler(reqSvc, fulfillSvc, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST",
			"/requests/"+reqID.String()+"/fulfill", fulfillBody()))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("donation already reserved maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reqSvc := mocks.NewMockRequestService(ctrl)
		fulfillSvc := mocks.NewMockFulfillmentService(ctrl)
		fulfillSvc.EXPECT().
			Fulfill(gomock.Any(), reqID, donID).
			Return(fulfillment.ErrDonationUnavailable).
			Times(1)

		router := newTestRouter(NewRequestHandler(reqSvc, fulfillSvc, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST",
			"/requests/"+reqID.String()+"/fulfill", fulfillBody()))

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "conflict", resp["error"])
		assert.Equal(t, "donation not available", resp["error_description"])
	})

	t.Run("incompatible blood maps to 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reqSvc := mocks.NewMockRequestService(ctrl)
		fulfillSvc := mocks.NewMockFulfillmentService(ctrl)
		fulfillSvc.EXPECT().
			Fulfill(gomock.Any(), reqID, donID).
			Return(fulfillment.ErrIncompatibleBloodTypes).
			Times(1)

		router := newTestRouter(NewRequestHandler(reqSvc, fulfillSvc, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST",
			"/requests/"+reqID.String()+"/fulfill", fulfillBody()))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing donation id is rejected before the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reqSvc := mocks.NewMockRequestService(ctrl)
		fulfillSvc := mocks.NewMockFulfillmentService(ctrl)

		router := newTestRouter(NewRequestHandler(reqSvc, fulfillSvc, testLogger()))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST",
			"/requests/"+reqID.String()+"/fulfill", bytes.NewReader([]byte(`{}`))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestHandler_List_Filters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockRequestService(ctrl)
	svc.EXPECT().
		List(gomock.Any(), gomock.Cond(func(f request.Filter) bool {
			return f.Fulfilled != nil && !*f.Fulfilled &&
				f.BloodType == domain.BloodAPos && f.CriticalOnly
		})).
		Return(nil, nil).
		Times(1)

	fulfillSvc := mocks.NewMockFulfillmentService(ctrl)
	router := newTestRouter(NewRequestHandler(svc, fulfillSvc, testLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET",
		"/requests?fulfilled=false&bloodGroup=A%2B&critical=true", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMatchHandler_DonorsForRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reqID := domain.NewRequestID()
	anchor := &request.Request{
		ID:        reqID,
		BloodType: domain.BloodAPos,
		CreatedAt: time.Now(),
	}
	match := matching.DonorCandidate{
		Donation: &donation.Donation{
			ID:        domain.NewDonationID(),
			BloodType: domain.BloodAPos,
			Available: true,
		},
		ExactMatch: true,
	}

	svc := mocks.NewMockMatchService(ctrl)
	svc.EXPECT().
		FindMatchesForRequest(gomock.Any(), reqID).
		Return(&matching.RequestMatches{Request: anchor, Matches: []matching.DonorCandidate{match}}, nil).
		Times(1)

	router := newTestRouter(NewMatchHandler(svc, testLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/matches/donors/"+reqID.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp RequestMatchesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, reqID.String(), resp.Request.ID)
	require.Len(t, resp.Matches, 1)
	assert.True(t, resp.Matches[0].ExactMatch)
}

func TestMatchHandler_RequestsForDonor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	donorID := domain.NewDonorID()
	candidate := matching.RequestCandidate{
		Request: &request.Request{
			ID:        domain.NewRequestID(),
			BloodType: domain.BloodAPos,
			Critical:  true,
			Latitude:  floatPtr(23.8),
			Longitude: floatPtr(90.4),
		},
		DistanceKm: 12.5,
	}

	svc := mocks.NewMockMatchService(ctrl)
	svc.EXPECT().
		FindMatchesForDonor(gomock.Any(), donorID).
		Return([]matching.RequestCandidate{candidate}, nil).
		Times(1)

	router := newTestRouter(NewMatchHandler(svc, testLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/matches/requests/"+donorID.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []RequestMatchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 12.5, resp[0].DistanceKm)
	assert.True(t, resp[0].Request.Critical)
}

func TestMatchHandler_IncompleteProfileMaps400(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	donorID := domain.NewDonorID()
	svc := mocks.NewMockMatchService(ctrl)
	svc.EXPECT().
		FindMatchesForDonor(gomock.Any(), donorID).
		Return(nil, matching.ErrIncompleteProfile).
		Times(1)

	router := newTestRouter(NewMatchHandler(svc, testLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/matches/requests/"+donorID.String(), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
