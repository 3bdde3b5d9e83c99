package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "dropofhope/pkg/domain-errors"
)

func TestParseBloodType(t *testing.T) {
	t.Run("accepts all eight canonical groups", func(t *testing.T) {
		for _, bt := range BloodTypes() {
			parsed, err := ParseBloodType(bt.String())
			require.NoError(t, err)
			assert.Equal(t, bt, parsed)
			assert.True(t, parsed.IsValid())
		}
	})

	t.Run("rejects non-canonical values", func(t *testing.T) {
		for _, s := range []string{"", "o-", "AB", "C+", "A +", "ab+"} {
			_, err := ParseBloodType(s)
			require.Error(t, err, "expected %q to be rejected", s)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("zero value is nil and invalid", func(t *testing.T) {
		var bt BloodType
		assert.True(t, bt.IsNil())
		assert.False(t, bt.IsValid())
	})
}

func TestParseIDs(t *testing.T) {
	t.Run("round-trips a generated ID", func(t *testing.T) {
		id := NewDonationID()
		parsed, err := ParseDonationID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("rejects empty, malformed, and nil UUIDs", func(t *testing.T) {
		for _, s := range []string{"", "not-a-uuid", uuid.Nil.String()} {
			_, err := ParseDonorID(s)
			require.Error(t, err, "expected %q to be rejected", s)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

			_, err = ParseDonationID(s)
			require.Error(t, err)

			_, err = ParseRequestID(s)
			require.Error(t, err)
		}
	})

	t.Run("typed IDs keep distinct identities", func(t *testing.T) {
		id := NewDonorID()
		assert.False(t, id.IsNil())
		assert.True(t, DonorID{}.IsNil())
		assert.True(t, DonationID{}.IsNil())
		assert.True(t, RequestID{}.IsNil())
	})
}
