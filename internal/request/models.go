// Package request owns blood requests: patient needs waiting to be matched
// against donation listings. Once fulfilled a request is terminal and keeps a
// reference to the donation that served it.
package request

import (
	"time"

	"dropofhope/pkg/domain"
)

// Request is a blood request. Fulfilled is true exactly when FulfilledBy is
// set; the fulfillment coordinator maintains that invariant.
type Request struct {
	ID              domain.RequestID
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
	Fulfilled       bool
	FulfilledBy     *domain.DonationID
	CreatedAt       time.Time
}

// Position returns the request's coordinates, false when incomplete.
func (r *Request) Position() (domain.GeoPoint, bool) {
	return domain.NewGeoPoint(r.Latitude, r.Longitude)
}

// Filter narrows List. A nil Fulfilled means both open and fulfilled.
type Filter struct {
	Fulfilled    *bool
	BloodType    domain.BloodType
	CriticalOnly bool
}
