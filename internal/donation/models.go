// Package donation owns blood donation listings: the records donors publish
// and the availability rules that govern them.
package donation

import (
	"time"

	"dropofhope/pkg/domain"
)

// Donation is a published donation listing. Available means it can still be
// matched and reserved; a donation consumed by a fulfilled request is never
// available again through this service.
type Donation struct {
	ID               domain.DonationID
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
	Available        bool
	CreatedAt        time.Time
}

// Position returns the listing's coordinates, false when incomplete.
func (d *Donation) Position() (domain.GeoPoint, bool) {
	return domain.NewGeoPoint(d.Latitude, d.Longitude)
}

// HistoryEntry annotates a donation with the patient it served, when a
// fulfilled request references it.
type HistoryEntry struct {
	Donation       *Donation
	UsedForPatient string
}
