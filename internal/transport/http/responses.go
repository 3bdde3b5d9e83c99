package httptransport

import (
	"time"

	"dropofhope/internal/donation"
	"dropofhope/internal/donor"
	"dropofhope/internal/matching"
	"dropofhope/internal/request"
)

// DonorResponse is the HTTP representation of a donor profile.
type DonorResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	BloodGroup       string     `json:"blood_group,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
	Location         string     `json:"location,omitempty"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// FromDonor converts a donor profile to its HTTP representation.
func FromDonor(d *donor.Donor) *DonorResponse {
	return &DonorResponse{
		ID:               d.ID.String(),
		Name:             d.Name,
		Email:            d.Email,
		BloodGroup:       d.BloodType.String(),
		LastDonationDate: d.LastDonationDate,
		Location:         d.Location,
		Latitude:         d.Latitude,
		Longitude:        d.Longitude,
		CreatedAt:        d.CreatedAt,
	}
}

// DonationResponse is the HTTP representation of a donation listing.
type DonationResponse struct {
	ID               string     `json:"id"`
	DonorID          string     `json:"donor_id"`
	DonorName        string     `json:"donor_name"`
	BloodGroup       string     `json:"blood_group"`
	DonationDate     time.Time  `json:"donation_date"`
	ContactNumber    string     `json:"contact_number"`
	Location         string     `json:"location"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
	AdditionalNotes  string     `json:"additional_notes,omitempty"`
	Available        bool       `json:"is_available"`
	CreatedAt        time.Time  `json:"created_at"`
}

// FromDonation converts a domain donation to its HTTP representation.
func FromDonation(d *donation.Donation) *DonationResponse {
	return &DonationResponse{
		ID:               d.ID.String(),
		DonorID:          d.DonorID.String(),
		DonorName:        d.DonorName,
		BloodGroup:       d.BloodType.String(),
		DonationDate:     d.DonationDate,
		ContactNumber:    d.ContactNumber,
		Location:         d.Location,
		Latitude:         d.Latitude,
		Longitude:        d.Longitude,
		LastDonationDate: d.LastDonationDate,
		AdditionalNotes:  d.AdditionalNotes,
		Available:        d.Available,
		CreatedAt:        d.CreatedAt,
	}
}

// FromDonations converts a slice of donations, never returning null JSON.
func FromDonations(ds []*donation.Donation) []*DonationResponse {
	out := make([]*DonationResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDonation(d))
	}
	return out
}

// HistoryEntryResponse is one row of a donor's donation history.
type HistoryEntryResponse struct {
	*DonationResponse
	UsedForPatient string `json:"used_for_patient,omitempty"`
}

// FromHistory converts donor history entries to their HTTP representation.
func FromHistory(entries []donation.HistoryEntry) []*HistoryEntryResponse {
	out := make([]*HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &HistoryEntryResponse{
			DonationResponse: FromDonation(e.Donation),
			UsedForPatient:   e.UsedForPatient,
		})
	}
	return out
}

// RequestResponse is the HTTP representation of a blood request.
type RequestResponse struct {
	ID              string    `json:"id"`
	RequesterID     string    `json:"requester_id"`
	PatientName     string    `json:"patient_name"`
	BloodGroup      string    `json:"blood_group"`
	UnitsRequired   int       `json:"units_required"`
	ContactNumber   string    `json:"contact_number"`
	Location        string    `json:"location"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	RequiredDate    time.Time `json:"required_date"`
	HospitalName    string    `json:"hospital_name,omitempty"`
	HospitalAddress string    `json:"hospital_address,omitempty"`
	Critical        bool      `json:"is_critical"`
	AdditionalNotes string    `json:"additional_notes,omitempty"`
	Fulfilled       bool      `json:"fulfilled"`
	FulfilledBy     string    `json:"fulfilled_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromRequest converts a domain request to its HTTP representation.
func FromRequest(r *request.Request) *RequestResponse {
	resp := &RequestResponse{
		ID:              r.ID.String(),
		RequesterID:     r.RequesterID.String(),
		PatientName:     r.PatientName,
		BloodGroup:      r.BloodType.String(),
		UnitsRequired:   r.UnitsRequired,
		ContactNumber:   r.ContactNumber,
		Location:        r.Location,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		RequiredDate:    r.RequiredDate,
		HospitalName:    r.HospitalName,
		HospitalAddress: r.HospitalAddress,
		Critical:        r.Critical,
		AdditionalNotes: r.AdditionalNotes,
		Fulfilled:       r.Fulfilled,
		CreatedAt:       r.CreatedAt,
	}
	if r.FulfilledBy != nil {
		resp.FulfilledBy = r.FulfilledBy.String()
	}
	return resp
}

// FromRequests converts a slice of requests, never returning null JSON.
func FromRequests(rs []*request.Request) []*RequestResponse {
	out := make([]*RequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRequest(r))
	}
	return out
}

// DonorMatchResponse is a ranked donation candidate for a request.
type DonorMatchResponse struct {
	Donation   *DonationResponse `json:"donation"`
	ExactMatch bool              `json:"exact_match"`
}

// RequestMatchesResponse is the result of GET /matches/donors/{id}.
type RequestMatchesResponse struct {
	Request *RequestResponse      `json:"request"`
	Matches []*DonorMatchResponse `json:"matches"`
}

// FromRequestMatches converts a donor-side match result.
func FromRequestMatches(m *matching.RequestMatches) *RequestMatchesResponse {
	matches := make([]*DonorMatchResponse, 0, len(m.Matches))
	for _, c := range m.Matches {
		matches = append(matches, &DonorMatchResponse{
			Donation:   FromDonation(c.Donation),
			ExactMatch: c.ExactMatch,
		})
	}
	return &RequestMatchesResponse{Request: FromRequest(m.Request), Matches: matches}
}

// RequestMatchResponse is a ranked open request for a donor.
type RequestMatchResponse struct {
	Request    *RequestResponse `json:"request"`
	DistanceKm float64          `json:"distance_km"`
}

// FromRequestCandidates converts a request-side match result.
func FromRequestCandidates(cs []matching.RequestCandidate) []*RequestMatchResponse {
	out := make([]*RequestMatchResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, &RequestMatchResponse{
			Request:    FromRequest(c.Request),
			DistanceKm: c.DistanceKm,
		})
	}
	return out
}
