package models

import (
	"time"
)

// FeedKind discriminates what a feed post wraps
type FeedKind string

const (
	FeedKindActivity    FeedKind = "activity"
	FeedKindLocation    FeedKind = "location"
	FeedKindTrip        FeedKind = "trip"
	FeedKindAchievement FeedKind = "achievement"
)

// ValidFeedKind reports whether k names a feed subject table
func ValidFeedKind(k FeedKind) bool {
	switch k {
	case FeedKindActivity, FeedKindLocation, FeedKindTrip, FeedKindAchievement:
		return true
	}
	return false
}

// FeedRef identifies a feed post as an explicit (kind, id) pair. Post
// identity is never encoded as a delimited string, so ids containing
// hyphens (UUIDs) are unambiguous.
type FeedRef struct {
	Kind FeedKind `json:"kind"`
	ID   string   `json:"id"`
}

// Like marks that a user liked a feed subject. Unique per (subject, user).
type Like struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SubjectKind FeedKind  `json:"subject_kind" gorm:"not null;size:20;index:idx_likes_subject"`
	SubjectID   string    `json:"subject_id" gorm:"not null;size:191;index:idx_likes_subject"`
	UserID      string    `json:"user_id" gorm:"not null;size:191"`
	CreatedAt   time.Time `json:"created_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Comment on a feed subject. ReplyTo references a top-level comment of the
// same subject; replies to replies are not modeled.
type Comment struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	SubjectKind FeedKind  `json:"subject_kind" gorm:"not null;size:20;index:idx_comments_subject"`
	SubjectID   string    `json:"subject_id" gorm:"not null;size:191;index:idx_comments_subject"`
	UserID      string    `json:"user_id" gorm:"not null;size:191"`
	Body        string    `json:"body" gorm:"not null;type:text"`
	ReplyTo     *string   `json:"reply_to" gorm:"size:191"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// FeedComment is a top-level comment with its replies for API responses
type FeedComment struct {
	ID        string        `json:"id"`
	User      UserSummary   `json:"user"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"created_at"`
	Replies   []FeedComment `json:"replies,omitempty"`
}

// FeedPost is the unified, timestamp-ordered wrapper around a shared
// activity, location, trip or achievement.
type FeedPost struct {
	Ref         FeedRef       `json:"ref"`
	Sharer      UserSummary   `json:"sharer"`
	Timestamp   time.Time     `json:"timestamp"`
	Activity    *Activity     `json:"activity,omitempty"`
	Spot        *SavedSpot    `json:"location,omitempty"`
	Trip        *Trip         `json:"trip,omitempty"`
	Achievement *Achievement  `json:"achievement,omitempty"`
	LikeUserIDs []string      `json:"like_user_ids"`
	Comments    []FeedComment `json:"comments"`
}

// FeedResponse wraps the merged feed for the client
type FeedResponse struct {
	Posts []FeedPost `json:"posts"`
	Count int        `json:"count"`
}
