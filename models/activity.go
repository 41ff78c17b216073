package models

import (
	"time"
)

type ActivityType string

const (
	ActivityTypeBike        ActivityType = "bike"
	ActivityTypeRun         ActivityType = "run"
	ActivityTypeWalk        ActivityType = "walk"
	ActivityTypeHike        ActivityType = "hike"
	ActivityTypePaddleboard ActivityType = "paddleboard"
	ActivityTypeClimb       ActivityType = "climb"
	ActivityTypeOther       ActivityType = "other"
)

// ValidActivityType reports whether t is one of the supported activity kinds
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityTypeBike, ActivityTypeRun, ActivityTypeWalk, ActivityTypeHike,
		ActivityTypePaddleboard, ActivityTypeClimb, ActivityTypeOther:
		return true
	}
	return false
}

type Activity struct {
	ID           string       `json:"id" gorm:"primaryKey;size:191"`
	UserID       string       `json:"user_id" gorm:"not null;index;size:191"`
	Type         ActivityType `json:"type" gorm:"not null;size:20"`
	Distance     float64      `json:"distance"`      // meters
	Duration     int          `json:"duration"`      // seconds
	AverageSpeed float64      `json:"average_speed"` // km/h
	MaxSpeed     float64      `json:"max_speed"`     // km/h
	Route        CoordSlice   `json:"route" gorm:"type:json"`
	StartTime    time.Time    `json:"start_time" gorm:"not null"`
	EndTime      *time.Time   `json:"end_time"`
	ActivityDate *time.Time   `json:"activity_date"` // calendar bucketing falls back to StartTime
	Rating       int          `json:"rating" gorm:"default:0"`
	Notes        string       `json:"notes" gorm:"type:text"`
	Shared       bool         `json:"shared" gorm:"default:false"`
	IsCompleted  bool         `json:"is_completed" gorm:"default:false"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// DateKey returns the local calendar day this activity belongs to
func (a *Activity) DateKey() string {
	if a.ActivityDate != nil {
		return a.ActivityDate.Format("2006-01-02")
	}
	return a.StartTime.Format("2006-01-02")
}
