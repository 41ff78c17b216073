package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidActivityType(t *testing.T) {
	for _, valid := range []ActivityType{
		ActivityTypeBike, ActivityTypeRun, ActivityTypeWalk, ActivityTypeHike,
		ActivityTypePaddleboard, ActivityTypeClimb, ActivityTypeOther,
	} {
		assert.True(t, ValidActivityType(valid), string(valid))
	}
	assert.False(t, ValidActivityType("swim"))
	assert.False(t, ValidActivityType(""))
}

func TestValidFeedKind(t *testing.T) {
	for _, valid := range []FeedKind{
		FeedKindActivity, FeedKindLocation, FeedKindTrip, FeedKindAchievement,
	} {
		assert.True(t, ValidFeedKind(valid), string(valid))
	}
	assert.False(t, ValidFeedKind("post"))
}

func TestActivityDateKeyFallsBackToStartTime(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	activity := Activity{StartTime: start}

	assert.Equal(t, "2024-06-15", activity.DateKey())

	override := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	activity.ActivityDate = &override
	assert.Equal(t, "2024-06-20", activity.DateKey())
}

func TestSpotDateKeyFallsBackToCreatedAt(t *testing.T) {
	spot := SavedSpot{CreatedAt: time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-06-12", spot.DateKey())

	visited := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	spot.VisitDate = &visited
	assert.Equal(t, "2024-06-08", spot.DateKey())
}

func TestGenerateHandleFromName(t *testing.T) {
	assert.Equal(t, "jane_doe", GenerateHandleFromName("Jane Doe"))
	assert.Equal(t, "jr_smith", GenerateHandleFromName("J.R. Smith"))
	assert.Equal(t, "anne_marie", GenerateHandleFromName("Anne-Marie"))
}

func TestStringSliceScanAndValue(t *testing.T) {
	s := StringSlice{"a.jpg", "b.jpg"}

	value, err := s.Value()
	assert.NoError(t, err)

	var scanned StringSlice
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, s, scanned)

	var empty StringSlice
	assert.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}

func TestCoordSliceScanAndValue(t *testing.T) {
	route := CoordSlice{
		{Latitude: 47.6062, Longitude: -122.3321},
		{Latitude: 47.6070, Longitude: -122.3330},
	}

	value, err := route.Value()
	assert.NoError(t, err)

	var scanned CoordSlice
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, route, scanned)
}
