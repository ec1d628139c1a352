package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"", true}, // optional
		{"user@example.com", true},
		{"a@b.co", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		err := (&Form{}).Email("email", tc.value).Err()
		if tc.ok {
			assert.NoError(t, err, tc.value)
		} else {
			assert.Error(t, err, tc.value)
		}
	}
}

func TestNationalID(t *testing.T) {
	assert.NoError(t, (&Form{}).NationalID("nationalId", "").Err())
	assert.NoError(t, (&Form{}).NationalID("nationalId", "0801199912345").Err())
	assert.Error(t, (&Form{}).NationalID("nationalId", "12345").Err())
	assert.Error(t, (&Form{}).NationalID("nationalId", "08011999123456").Err())
	assert.Error(t, (&Form{}).NationalID("nationalId", "0801-1999-1234").Err())
}

func TestFirstFailureWins(t *testing.T) {
	err := (&Form{}).
		Required("name", "").
		Email("email", "bad").
		Err()
	require.Error(t, err)

	fe, ok := err.(*FieldError)
	require.True(t, ok)
	assert.Equal(t, "name", fe.Field)
}

func TestNumericChecks(t *testing.T) {
	assert.Error(t, (&Form{}).Positive("price", 0).Err())
	assert.NoError(t, (&Form{}).Positive("price", 0.01).Err())

	assert.Error(t, (&Form{}).NonNegative("stock", -1).Err())
	assert.NoError(t, (&Form{}).NonNegative("stock", 0).Err())

	assert.Error(t, (&Form{}).IntRange("rating", 6, 0, 5).Err())
	assert.NoError(t, (&Form{}).IntRange("rating", 5, 0, 5).Err())
}

func TestFraction(t *testing.T) {
	assert.Error(t, (&Form{}).Fraction("percentage", 0).Err())
	assert.Error(t, (&Form{}).Fraction("percentage", 1.5).Err())
	assert.NoError(t, (&Form{}).Fraction("percentage", 0.10).Err())
	assert.NoError(t, (&Form{}).Fraction("percentage", 1).Err())
}
