package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trailhead-api/models"
)

func TestGenerateGPX(t *testing.T) {
	activity := &models.Activity{
		ID:        "a1",
		Type:      models.ActivityTypeHike,
		StartTime: time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC),
		Route: models.CoordSlice{
			{Latitude: 47.6062, Longitude: -122.3321},
			{Latitude: 47.6070, Longitude: -122.3330},
		},
	}

	gpx := GenerateGPX(activity)

	assert.True(t, strings.HasPrefix(gpx, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, gpx, `creator="Trailhead"`)
	assert.Contains(t, gpx, "<time>2024-06-15T09:30:00Z</time>")
	assert.Contains(t, gpx, "<name>hike</name>")
	assert.Equal(t, 2, strings.Count(gpx, "<trkpt"))
	assert.Contains(t, gpx, `lat="47.606200"`)
	assert.True(t, strings.HasSuffix(gpx, "</trkseg></trk></gpx>"))
}

func TestGenerateGPXEmptyRoute(t *testing.T) {
	activity := &models.Activity{
		Type:      models.ActivityTypeRun,
		StartTime: time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC),
	}

	gpx := GenerateGPX(activity)

	assert.NotContains(t, gpx, "<trkpt")
	assert.Contains(t, gpx, "<trkseg></trkseg>")
}
