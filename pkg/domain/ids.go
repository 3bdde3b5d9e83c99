package domain

import (
	"github.com/google/uuid"

	dErrors "dropofhope/pkg/domain-errors"
)

// Typed entity IDs. Distinct types keep a DonationID from ever being passed
// where a RequestID belongs; the compiler enforces what the schema's foreign
// keys enforce at rest.
type (
	DonorID    uuid.UUID
	DonationID uuid.UUID
	RequestID  uuid.UUID
)

// NewDonorID returns a fresh random donor ID.
func NewDonorID() DonorID { return DonorID(uuid.New()) }

// NewDonationID returns a fresh random donation ID.
func NewDonationID() DonationID { return DonationID(uuid.New()) }

// NewRequestID returns a fresh random request ID.
func NewRequestID() RequestID { return RequestID(uuid.New()) }

func (id DonorID) String() string    { return uuid.UUID(id).String() }
func (id DonationID) String() string { return uuid.UUID(id).String() }
func (id RequestID) String() string  { return uuid.UUID(id).String() }

func (id DonorID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id DonationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id RequestID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs. Enforced once, at trust boundaries.
func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id must not be empty", kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id is not a valid UUID", kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id must not be the nil UUID", kind)
	}
	return u, nil
}

// ParseDonorID validates and returns a DonorID.
func ParseDonorID(s string) (DonorID, error) {
	u, err := parseUUID("donor", s)
	if err != nil {
		return DonorID{}, err
	}
	return DonorID(u), nil
}

// ParseDonationID validates and returns a DonationID.
func ParseDonationID(s string) (DonationID, error) {
	u, err := parseUUID("donation", s)
	if err != nil {
		return DonationID{}, err
	}
	return DonationID(u), nil
}

// ParseRequestID validates and returns a RequestID.
func ParseRequestID(s string) (RequestID, error) {
	u, err := parseUUID("request", s)
	if err != nil {
		return RequestID{}, err
	}
	return RequestID(u), nil
}
