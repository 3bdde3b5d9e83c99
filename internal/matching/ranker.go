package matching

import (
	"sort"
	"strings"

	"dropofhope/internal/donation"
	"dropofhope/internal/donor"
	"dropofhope/internal/request"
	dErrors "dropofhope/pkg/domain-errors"
)

// ErrIncompleteProfile reports a donor who cannot be matched against requests
// because the profile lacks a blood type or complete coordinates.
var ErrIncompleteProfile = dErrors.New(dErrors.CodeInvalidInput,
	"donor profile is missing blood type or coordinates")

// DonorCandidate is a donation annotated with its rank key for a request.
// Transient: recomputed per query, never persisted.
type DonorCandidate struct {
	Donation   *donation.Donation
	ExactMatch bool
}

// RequestCandidate is a request annotated with its computed distance from a
// donor. Transient: recomputed per query, never persisted.
type RequestCandidate struct {
	Request    *request.Request
	DistanceKm float64
}

// Ranker filters and orders match candidates. It holds only immutable
// configuration, so one instance serves all requests concurrently.
type Ranker struct {
	table    CompatibilityTable
	radiusKm float64
}

// NewRanker builds a Ranker with the given compatibility relation and
// proximity radius in kilometers.
func NewRanker(table CompatibilityTable, radiusKm float64) *Ranker {
	return &Ranker{table: table, radiusKm: radiusKm}
}

// MatchDonorsForRequest filters candidates down to available donations whose
// blood type can serve the request and whose location overlaps the request's.
// Ordering: exact blood-type matches first, then merely compatible ones, each
// group newest-listing-first; ties keep scan order.
//
// Location overlap prefers true coordinate distance when both sides carry a
// complete position, and falls back to bidirectional substring containment of
// the location text otherwise.
func (r *Ranker) MatchDonorsForRequest(req *request.Request, candidates []*donation.Donation) []DonorCandidate {
	compatible := make(map[string]bool, 8)
	for _, bt := range r.table.CompatibleDonors(req.BloodType) {
		compatible[bt.String()] = true
	}

	out := make([]DonorCandidate, 0, len(candidates))
	for _, d := range candidates {
		if !d.Available {
			continue
		}
		if !compatible[d.BloodType.String()] {
			continue
		}
		if !r.sameArea(req, d) {
			continue
		}
		out = append(out, DonorCandidate{
			Donation:   d,
			ExactMatch: d.BloodType == req.BloodType,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ExactMatch != out[j].ExactMatch {
			return out[i].ExactMatch
		}
		return out[i].Donation.CreatedAt.After(out[j].Donation.CreatedAt)
	})
	return out
}

// MatchRequestsForDonor filters candidates down to open requests the donor
// can serve within the proximity radius (boundary inclusive). Ordering:
// critical requests first, then ascending distance; ties keep scan order.
// Fails with ErrIncompleteProfile when the donor lacks a blood type or a
// complete position.
func (r *Ranker) MatchRequestsForDonor(d *donor.Donor, candidates []*request.Request) ([]RequestCandidate, error) {
	if !d.BloodType.IsValid() {
		return nil, ErrIncompleteProfile
	}
	origin, ok := d.Position()
	if !ok {
		return nil, ErrIncompleteProfile
	}

	out := make([]RequestCandidate, 0, len(candidates))
	for _, req := range candidates {
		if req.Fulfilled {
			continue
		}
		if req.BloodType != d.BloodType && !r.table.IsCompatible(req.BloodType, d.BloodType) {
			continue
		}
		pos, ok := req.Position()
		if !ok {
			continue
		}
		dist := DistanceKm(origin, pos)
		if dist > r.radiusKm {
			continue
		}
		out = append(out, RequestCandidate{Request: req, DistanceKm: dist})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Request.Critical != out[j].Request.Critical {
			return out[i].Request.Critical
		}
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out, nil
}

// sameArea decides whether a donation and a request plausibly share an area.
// With complete coordinates on both sides it uses real distance; otherwise it
// reproduces the legacy rule: either location text contains the other,
// case-insensitively.
func (r *Ranker) sameArea(req *request.Request, d *donation.Donation) bool {
	reqPos, reqOK := req.Position()
	donPos, donOK := d.Position()
	if reqOK && donOK {
		return DistanceKm(reqPos, donPos) <= r.radiusKm
	}
	a := strings.ToLower(req.Location)
	b := strings.ToLower(d.Location)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
