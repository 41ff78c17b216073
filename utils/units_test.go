package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trailhead-api/models"
)

func TestFormatDistanceMetric(t *testing.T) {
	tests := []struct {
		meters   float64
		decimals int
		want     string
	}{
		{50, 2, "50 m"},
		{99, 2, "99 m"},
		{100, 2, "0.10 km"},
		{1500, 2, "1.50 km"},
		{1500, 1, "1.5 km"},
		{12345, 0, "12 km"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.meters, models.UnitSystemMetric, tt.decimals))
	}
}

func TestFormatDistanceImperial(t *testing.T) {
	tests := []struct {
		meters   float64
		decimals int
		want     string
	}{
		{50, 2, "164 ft"},
		{1609.344, 2, "1.00 mi"},
		{8046.72, 1, "5.0 mi"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.meters, models.UnitSystemImperial, tt.decimals))
	}
}

func TestFormatDistanceNegativeDecimalsClamped(t *testing.T) {
	assert.Equal(t, "2 km", FormatDistance(1500, models.UnitSystemMetric, -1))
}

func TestFormatSpeed(t *testing.T) {
	assert.Equal(t, "21.5 km/h", FormatSpeed(21.5, models.UnitSystemMetric))
	assert.Equal(t, "13.4 mph", FormatSpeed(21.5, models.UnitSystemImperial))
}

func TestFormatElevation(t *testing.T) {
	assert.Equal(t, "480 m", FormatElevation(480, models.UnitSystemMetric))
	assert.Equal(t, "1575 ft", FormatElevation(480, models.UnitSystemImperial))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{45, "45s"},
		{60, "1m"},
		{1830, "30m"},
		{4980, "1h 23m"},
		{7200, "2h 0m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}
