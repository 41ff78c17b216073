package models

import "time"

type UnitSystem string

const (
	UnitSystemMetric   UnitSystem = "metric"
	UnitSystemImperial UnitSystem = "imperial"
)

// UserSettings holds per-user display preferences. One row per user,
// created with defaults the first time the settings are read.
type UserSettings struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"not null;uniqueIndex;size:191"`
	UnitSystem       UnitSystem `json:"unit_system" gorm:"not null;default:'metric';size:20"`
	DistanceDecimals int        `json:"distance_decimals" gorm:"not null;default:2"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:           userID,
		UnitSystem:       UnitSystemMetric,
		DistanceDecimals: 2,
	}
}
