package domain

import (
	dErrors "dropofhope/pkg/domain-errors"
)

// BloodType represents one of the eight canonical ABO/Rh groups.
// This is a domain primitive that enforces validity at parse time.
type BloodType string

const (
	BloodONeg  BloodType = "O-"
	BloodOPos  BloodType = "O+"
	BloodANeg  BloodType = "A-"
	BloodAPos  BloodType = "A+"
	BloodBNeg  BloodType = "B-"
	BloodBPos  BloodType = "B+"
	BloodABNeg BloodType = "AB-"
	BloodABPos BloodType = "AB+"
)

var canonicalBloodTypes = map[BloodType]struct{}{
	BloodONeg: {}, BloodOPos: {},
	BloodANeg: {}, BloodAPos: {},
	BloodBNeg: {}, BloodBPos: {},
	BloodABNeg: {}, BloodABPos: {},
}

// ParseBloodType validates and returns a BloodType.
// Returns an error when the value is not one of the eight canonical groups.
func ParseBloodType(s string) (BloodType, error) {
	bt := BloodType(s)
	if _, ok := canonicalBloodTypes[bt]; !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown blood type: %q", s)
	}
	return bt, nil
}

// String returns the canonical string form.
func (bt BloodType) String() string { return string(bt) }

// IsNil returns true when no blood type is recorded.
func (bt BloodType) IsNil() bool { return bt == "" }

// IsValid reports whether bt is one of the eight canonical groups.
func (bt BloodType) IsValid() bool {
	_, ok := canonicalBloodTypes[bt]
	return ok
}

// BloodTypes returns all canonical groups in a fixed order.
func BloodTypes() []BloodType {
	return []BloodType{
		BloodONeg, BloodOPos,
		BloodANeg, BloodAPos,
		BloodBNeg, BloodBPos,
		BloodABNeg, BloodABPos,
	}
}
