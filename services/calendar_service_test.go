package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailhead-api/models"
)

func TestBuildMonthGridShape(t *testing.T) {
	cs := NewCalendarService()

	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	month := cs.BuildMonth(ref, now, nil, nil)

	require.Len(t, month.Days, 42)
	assert.Equal(t, time.Sunday, month.Days[0].Date.Weekday())

	// Cells are consecutive calendar days
	for i := 1; i < len(month.Days); i++ {
		expected := month.Days[i-1].Date.AddDate(0, 0, 1)
		assert.True(t, month.Days[i].Date.Equal(expected), "cell %d is not consecutive", i)
	}

	// June 2024 starts on a Saturday, so the grid begins on May 26
	assert.Equal(t, "2024-05-26", month.Days[0].DateKey)
	assert.False(t, month.Days[0].IsCurrentMonth)
	assert.True(t, month.Days[6].IsCurrentMonth) // June 1
}

func TestBuildMonthGridStartsOnFirstWhenMonthStartsSunday(t *testing.T) {
	cs := NewCalendarService()

	// September 2024 starts on a Sunday
	ref := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	month := cs.BuildMonth(ref, now, nil, nil)

	assert.Equal(t, "2024-09-01", month.Days[0].DateKey)
	assert.True(t, month.Days[0].IsCurrentMonth)
}

func TestBuildMonthTodayMarking(t *testing.T) {
	cs := NewCalendarService()

	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("now inside month", func(t *testing.T) {
		now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)
		month := cs.BuildMonth(ref, now, nil, nil)

		todayCount := 0
		for _, day := range month.Days {
			if day.IsToday {
				todayCount++
				assert.Equal(t, "2024-06-15", day.DateKey)
			}
		}
		assert.Equal(t, 1, todayCount)
	})

	t.Run("now outside grid", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		month := cs.BuildMonth(ref, now, nil, nil)

		for _, day := range month.Days {
			assert.False(t, day.IsToday)
		}
	})
}

func TestBuildMonthPlacesActivitiesByDateKey(t *testing.T) {
	cs := NewCalendarService()

	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	override := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	activities := []models.Activity{
		{
			ID:        "a1",
			Type:      models.ActivityTypeHike,
			StartTime: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
			Distance:  8000,
			Duration:  7200,
		},
		{
			// activity_date wins over start_time for bucketing
			ID:           "a2",
			Type:         models.ActivityTypeRun,
			StartTime:    time.Date(2024, 6, 15, 7, 0, 0, 0, time.UTC),
			ActivityDate: &override,
			Distance:     5000,
			Duration:     1800,
		},
		{
			// outside the month, never placed in an in-month cell
			ID:        "a3",
			Type:      models.ActivityTypeBike,
			StartTime: time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC),
			Distance:  20000,
			Duration:  3600,
		},
	}

	month := cs.BuildMonth(ref, now, activities, nil)

	byKey := make(map[string]CalendarDay)
	for _, day := range month.Days {
		byKey[day.DateKey] = day
	}

	require.Len(t, byKey["2024-06-15"].Activities, 1)
	assert.Equal(t, "a1", byKey["2024-06-15"].Activities[0].ID)

	require.Len(t, byKey["2024-06-20"].Activities, 1)
	assert.Equal(t, "a2", byKey["2024-06-20"].Activities[0].ID)

	// Stats only count in-month cells
	assert.Equal(t, 2, month.Stats.Activities)
	assert.Equal(t, float64(13000), month.Stats.TotalDistance)
	assert.Equal(t, 9000, month.Stats.TotalDuration)
	assert.Equal(t, 2, month.Stats.ActiveDays)
}

func TestBuildMonthPlacesSpotsWithVisitDateFallback(t *testing.T) {
	cs := NewCalendarService()

	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	visited := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	spots := []models.SavedSpot{
		{ID: "s1", Name: "Overlook", VisitDate: &visited},
		{ID: "s2", Name: "Trailhead lot", CreatedAt: time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)},
	}

	month := cs.BuildMonth(ref, now, nil, spots)

	byKey := make(map[string]CalendarDay)
	for _, day := range month.Days {
		byKey[day.DateKey] = day
	}

	require.Len(t, byKey["2024-06-08"].Spots, 1)
	assert.Equal(t, "s1", byKey["2024-06-08"].Spots[0].ID)

	require.Len(t, byKey["2024-06-12"].Spots, 1)
	assert.Equal(t, "s2", byKey["2024-06-12"].Spots[0].ID)

	assert.Equal(t, 2, month.Stats.Locations)
	assert.Equal(t, 2, month.Stats.ActiveDays)
}

func TestBuildMonthSameDayActivityAndSpotCountsOneActiveDay(t *testing.T) {
	cs := NewCalendarService()

	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := ref

	activities := []models.Activity{
		{ID: "a1", StartTime: time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC)},
	}
	spots := []models.SavedSpot{
		{ID: "s1", CreatedAt: time.Date(2024, 6, 5, 16, 0, 0, 0, time.UTC)},
	}

	month := cs.BuildMonth(ref, now, activities, spots)

	assert.Equal(t, 1, month.Stats.ActiveDays)
	assert.Equal(t, 1, month.Stats.Activities)
	assert.Equal(t, 1, month.Stats.Locations)
}
