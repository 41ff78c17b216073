package models

import (
	"time"
)

type TripItemType string

const (
	TripItemTypeActivity TripItemType = "activity"
	TripItemTypeSpot     TripItemType = "spot"
)

type Trip struct {
	ID         string     `json:"id" gorm:"primaryKey;size:191"`
	UserID     string     `json:"user_id" gorm:"not null;index;size:191"`
	Name       string     `json:"name" gorm:"not null;size:255"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CoverPhoto *string    `json:"cover_photo" gorm:"size:500"`
	Shared     bool       `json:"shared" gorm:"default:false"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User  User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []TripItem `json:"items" gorm:"foreignKey:TripID"`
}

// TripItem wraps either an activity or a saved spot by id. The referenced
// row stays owned by its own table; trips only hold the reference.
type TripItem struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	TripID   string       `json:"trip_id" gorm:"not null;index;size:191"`
	ItemType TripItemType `json:"item_type" gorm:"not null;size:20"`
	ItemID   string       `json:"item_id" gorm:"not null;size:191"`
	Position int          `json:"position" gorm:"not null;default:0"`
	AddedAt  time.Time    `json:"added_at"`
}

// TripItemDetail is a trip item hydrated with the row it references
type TripItemDetail struct {
	TripItem
	Activity *Activity  `json:"activity,omitempty"`
	Spot     *SavedSpot `json:"spot,omitempty"`
}

// TripDetail is a trip with hydrated items for the trip screen
type TripDetail struct {
	Trip
	ItemDetails []TripItemDetail `json:"item_details"`
}

type Achievement struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	UserID      string    `json:"user_id" gorm:"not null;index;size:191"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"size:500"`
	EarnedAt    time.Time `json:"earned_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
