// Package matching implements the donor/request matching engine: blood-type
// compatibility, geographic proximity, and the ranking of candidates. All
// logic here is pure; orchestration against the stores lives in Service.
package matching

import "dropofhope/pkg/domain"

// CompatibilityTable maps a recipient blood type to the donor types it may
// safely receive. Injected into the ranker and the fulfillment coordinator as
// an immutable value; never mutated after construction.
type CompatibilityTable map[domain.BloodType][]domain.BloodType

// DefaultCompatibilityTable returns the standard ABO/Rh relation. O- appears
// in every set (universal donor); AB+ may receive all eight types (universal
// recipient).
func DefaultCompatibilityTable() CompatibilityTable {
	return CompatibilityTable{
		domain.BloodONeg:  {domain.BloodONeg},
		domain.BloodOPos:  {domain.BloodONeg, domain.BloodOPos},
		domain.BloodANeg:  {domain.BloodONeg, domain.BloodANeg},
		domain.BloodAPos:  {domain.BloodONeg, domain.BloodOPos, domain.BloodANeg, domain.BloodAPos},
		domain.BloodBNeg:  {domain.BloodONeg, domain.BloodBNeg},
		domain.BloodBPos:  {domain.BloodONeg, domain.BloodOPos, domain.BloodBNeg, domain.BloodBPos},
		domain.BloodABNeg: {domain.BloodONeg, domain.BloodANeg, domain.BloodBNeg, domain.BloodABNeg},
		domain.BloodABPos: domain.BloodTypes(),
	}
}

// CompatibleDonors returns every donor type that may donate to the recipient
// type. Unknown recipient types yield an empty set, meaning "no known
// matches" rather than an error.
func (t CompatibilityTable) CompatibleDonors(recipient domain.BloodType) []domain.BloodType {
	donors := t[recipient]
	out := make([]domain.BloodType, len(donors))
	copy(out, donors)
	return out
}

// IsCompatible reports whether donor blood may be given to the recipient.
func (t CompatibilityTable) IsCompatible(recipient, donor domain.BloodType) bool {
	for _, d := range t[recipient] {
		if d == donor {
			return true
		}
	}
	return false
}
