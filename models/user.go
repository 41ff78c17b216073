package models

import (
	"strings"
	"time"
)

type User struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	Handle        string    `json:"handle" gorm:"uniqueIndex;not null;size:50"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password      string    `json:"-" gorm:"not null;size:255"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	Avatar        *string   `json:"avatar" gorm:"size:500"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Activities   []Activity    `json:"activities,omitempty" gorm:"foreignKey:UserID"`
	Spots        []SavedSpot   `json:"spots,omitempty" gorm:"foreignKey:UserID"`
	Trips        []Trip        `json:"trips,omitempty" gorm:"foreignKey:UserID"`
	Achievements []Achievement `json:"achievements,omitempty" gorm:"foreignKey:UserID"`
}

// UserSummary is the public projection of a user embedded in feed posts,
// comments and friend lists.
type UserSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Handle string  `json:"handle"`
	Avatar *string `json:"avatar"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Handle: u.Handle,
		Avatar: u.Avatar,
	}
}

// UserStatistics aggregates a user's lifetime totals for the profile screen
type UserStatistics struct {
	TotalActivities int            `json:"total_activities"`
	TotalDistance   float64        `json:"total_distance"` // meters
	TotalDuration   int            `json:"total_duration"` // seconds
	TotalSpots      int            `json:"total_spots"`
	TotalTrips      int            `json:"total_trips"`
	ByActivityType  map[string]int `json:"by_activity_type"`
}

// GenerateHandleFromName creates a handle candidate from the user's name
func GenerateHandleFromName(name string) string {
	handle := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	handle = strings.ReplaceAll(handle, ".", "")
	handle = strings.ReplaceAll(handle, "-", "_")
	return handle
}
