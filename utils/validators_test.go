package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.org",
	}
	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@example.com",
	}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Abc123"))      // upper, lower, number
	assert.True(t, IsValidPassword("abc123!"))     // lower, number, special
	assert.False(t, IsValidPassword("abc12"))      // too short
	assert.False(t, IsValidPassword("abcdefgh"))   // only lower
	assert.False(t, IsValidPassword("abcdefg123")) // only two types
}

func TestCoordinateValidators(t *testing.T) {
	assert.True(t, IsValidLatitude(47.6))
	assert.True(t, IsValidLatitude(-90))
	assert.False(t, IsValidLatitude(90.1))

	assert.True(t, IsValidLongitude(-122.3))
	assert.True(t, IsValidLongitude(180))
	assert.False(t, IsValidLongitude(-180.5))
}

func TestIsValidPriority(t *testing.T) {
	assert.False(t, IsValidPriority(0))
	assert.True(t, IsValidPriority(1))
	assert.True(t, IsValidPriority(3))
	assert.False(t, IsValidPriority(4))
}

func TestIsValidRating(t *testing.T) {
	assert.True(t, IsValidRating(0))
	assert.True(t, IsValidRating(5))
	assert.False(t, IsValidRating(-1))
	assert.False(t, IsValidRating(6))
}
