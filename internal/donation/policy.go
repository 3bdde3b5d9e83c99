package donation

import (
	"time"

	dErrors "dropofhope/pkg/domain-errors"
)

// Donors must wait three calendar months between donations before a listing
// can be marked available again.
const cooldownMonths = 3

// ErrCooldownActive reports a refused availability toggle: the donor gave
// blood within the cooldown window.
var ErrCooldownActive = dErrors.New(dErrors.CodeInvariantViolation,
	"cannot mark available: last donation is less than 3 months ago")

// CanMarkAvailable reports whether the donation may be flipped back to
// available at the given time. A listing with no recorded last-donation date
// always may. Pure function of its inputs; callers inject now.
func CanMarkAvailable(d *Donation, now time.Time) bool {
	return CheckCooldown(d, now) == nil
}

// CheckCooldown returns ErrCooldownActive when the last donation falls inside
// the cooldown window. Exactly three months ago is outside the window.
func CheckCooldown(d *Donation, now time.Time) error {
	if d.LastDonationDate == nil {
		return nil
	}
	threshold := now.AddDate(0, -cooldownMonths, 0)
	if d.LastDonationDate.After(threshold) {
		return ErrCooldownActive
	}
	return nil
}
