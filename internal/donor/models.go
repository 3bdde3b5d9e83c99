// Package donor holds donor profiles. Credentials and sessions live outside
// this service; matching only needs the profile fields below.
package donor

import (
	"time"

	"dropofhope/pkg/domain"
)

// Donor is a registered user seen through the matching lens.
type Donor struct {
	ID               domain.DonorID
	Name             string
	Email            string
	BloodType        domain.BloodType // empty until the profile is filled in
	LastDonationDate *time.Time
	Location         string
	Latitude         *float64
	Longitude        *float64
	CreatedAt        time.Time
}

// Position returns the donor's coordinates. The second return is false when
// either coordinate is missing; such donors are excluded from proximity
// matching.
func (d *Donor) Position() (domain.GeoPoint, bool) {
	return domain.NewGeoPoint(d.Latitude, d.Longitude)
}
