package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "validation",
			err:      &ValidationError{Entity: "farmer", Field: "name", Reason: "is required"},
			sentinel: ErrValidation,
			message:  "invalid farmer: name is required",
		},
		{
			name:     "uniqueness",
			err:      &UniquenessError{Entity: "farmer", Field: "national_id", Value: "123"},
			sentinel: ErrUniqueness,
			message:  `farmer with national_id "123" already exists`,
		},
		{
			name:     "reference",
			err:      &ReferenceError{Entity: "sale", Field: "buyer_id", ID: 7},
			sentinel: ErrReference,
			message:  "sale: buyer_id 7 does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.message)
			wrapped := fmt.Errorf("creating: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.True(t, IsUserError(wrapped))
		})
	}
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(ErrNotFound))
	assert.True(t, IsUserError(fmt.Errorf("x: %w", ErrInvalidID)))
	assert.True(t, IsUserError(fmt.Errorf("import: %w", ErrStoreNotEmpty)))
	assert.False(t, IsUserError(ErrStoreDetached))
	assert.False(t, IsUserError(errors.New("disk I/O error")))
	assert.False(t, IsUserError(nil))
}
