package services

import (
	"time"

	"trailhead-api/models"
)

const calendarCells = 42 // 6 weeks x 7 days, fixed grid

// CalendarDay is one cell of the month grid. Empty days are kept so the
// client can render a full 7-column layout.
type CalendarDay struct {
	Date           time.Time          `json:"date"`
	DateKey        string             `json:"date_key"` // local "2006-01-02"
	Activities     []models.Activity  `json:"activities"`
	Spots          []models.SavedSpot `json:"locations"`
	IsToday        bool               `json:"is_today"`
	IsCurrentMonth bool               `json:"is_current_month"`
}

// MonthStats aggregates the in-month cells of the grid
type MonthStats struct {
	Activities    int     `json:"activities"`
	Locations     int     `json:"locations"`
	TotalDistance float64 `json:"total_distance"` // meters
	TotalDuration int     `json:"total_duration"` // seconds
	ActiveDays    int     `json:"active_days"`
}

// CalendarMonth is the full response for the calendar screen
type CalendarMonth struct {
	Days  []CalendarDay `json:"days"`
	Stats MonthStats    `json:"stats"`
}

type CalendarService struct{}

func NewCalendarService() *CalendarService {
	return &CalendarService{}
}

// BuildMonth produces the 42-cell grid for the month containing ref,
// starting from the Sunday on/before the first of the month. Matching is by
// local calendar-day string, so producers and consumers must agree on the
// process time zone. now is injected so IsToday is testable.
//
// Cost is O(42 * (len(activities) + len(spots))), fine for single-user data.
func (cs *CalendarService) BuildMonth(ref time.Time, now time.Time, activities []models.Activity, spots []models.SavedSpot) CalendarMonth {
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	gridStart := firstOfMonth.AddDate(0, 0, -int(firstOfMonth.Weekday()))
	todayKey := now.Format("2006-01-02")

	days := make([]CalendarDay, 0, calendarCells)
	stats := MonthStats{}

	for offset := 0; offset < calendarCells; offset++ {
		date := gridStart.AddDate(0, 0, offset)
		key := date.Format("2006-01-02")

		day := CalendarDay{
			Date:           date,
			DateKey:        key,
			Activities:     []models.Activity{},
			Spots:          []models.SavedSpot{},
			IsToday:        key == todayKey,
			IsCurrentMonth: date.Month() == firstOfMonth.Month() && date.Year() == firstOfMonth.Year(),
		}

		for i := range activities {
			if activities[i].DateKey() == key {
				day.Activities = append(day.Activities, activities[i])
			}
		}
		for i := range spots {
			if spots[i].DateKey() == key {
				day.Spots = append(day.Spots, spots[i])
			}
		}

		if day.IsCurrentMonth {
			stats.Activities += len(day.Activities)
			stats.Locations += len(day.Spots)
			for i := range day.Activities {
				stats.TotalDistance += day.Activities[i].Distance
				stats.TotalDuration += day.Activities[i].Duration
			}
			if len(day.Activities)+len(day.Spots) > 0 {
				stats.ActiveDays++
			}
		}

		days = append(days, day)
	}

	return CalendarMonth{Days: days, Stats: stats}
}
