package models

import (
	"time"
)

// SavedSpot is a bookmarked location (viewpoint, campsite, swimming hole...)
type SavedSpot struct {
	ID        string      `json:"id" gorm:"primaryKey;size:191"`
	UserID    string      `json:"user_id" gorm:"not null;index;size:191"`
	Name      string      `json:"name" gorm:"not null;size:255"`
	Category  string      `json:"category" gorm:"size:50"`
	Latitude  float64     `json:"latitude" gorm:"not null"`
	Longitude float64     `json:"longitude" gorm:"not null"`
	Photos    StringSlice `json:"photos" gorm:"type:json"`
	Rating    int         `json:"rating" gorm:"default:0"`
	VisitDate *time.Time  `json:"visit_date"` // calendar bucketing falls back to CreatedAt
	Notes     string      `json:"notes" gorm:"type:text"`
	Shared    bool        `json:"shared" gorm:"default:false"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// DateKey returns the local calendar day this spot belongs to
func (s *SavedSpot) DateKey() string {
	if s.VisitDate != nil {
		return s.VisitDate.Format("2006-01-02")
	}
	return s.CreatedAt.Format("2006-01-02")
}

type WishlistItem struct {
	ID         string     `json:"id" gorm:"primaryKey;size:191"`
	UserID     string     `json:"user_id" gorm:"not null;index;size:191"`
	Name       string     `json:"name" gorm:"not null;size:255"`
	Category   string     `json:"category" gorm:"size:50"`
	Latitude   float64    `json:"latitude" gorm:"not null"`
	Longitude  float64    `json:"longitude" gorm:"not null"`
	Priority   int        `json:"priority" gorm:"not null;default:2"` // 1..3
	Notes      string     `json:"notes" gorm:"type:text"`
	TargetDate *time.Time `json:"target_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
