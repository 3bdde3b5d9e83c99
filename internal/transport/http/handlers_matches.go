package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dropofhope/internal/matching"
	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/httputil"
)

//go:generate mockgen -source=handlers_matches.go -destination=mocks/match_service_mock.go -package=mocks

// MatchService defines the interface for match queries.
type MatchService interface {
	FindMatchesForRequest(ctx context.Context, id domain.RequestID) (*matching.RequestMatches, error)
	FindMatchesForDonor(ctx context.Context, id domain.DonorID) ([]matching.RequestCandidate, error)
}

// MatchHandler wires match query endpoints to the matching service.
type MatchHandler struct {
	service MatchService
	logger  *slog.Logger
}

func NewMatchHandler(service MatchService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{service: service, logger: logger}
}

// Register mounts match endpoints on the router.
func (h *MatchHandler) Register(r chi.Router) {
	r.Get("/matches/donors/{id}", h.HandleDonorsForRequest)
	r.Get("/matches/requests/{donorID}", h.HandleRequestsForDonor)
}

func (h *MatchHandler) HandleDonorsForRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.FindMatchesForRequest(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequestMatches(result))
}

func (h *MatchHandler) HandleRequestsForDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorID, err := domain.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	matches, err := h.service.FindMatchesForDonor(ctx, donorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequestCandidates(matches))
}
