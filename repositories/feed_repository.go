package repositories

import (
	"gorm.io/gorm"

	"trailhead-api/models"
)

// FeedRepository gathers the per-table reads the feed is assembled from
type FeedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// FriendIDs returns the ids of everyone the user has an accepted friendship with
func (r *FeedRepository) FriendIDs(userID string) ([]string, error) {
	var friendships []models.Friendship
	if err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).Find(&friendships).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		if f.User1ID == userID {
			ids = append(ids, f.User2ID)
		} else {
			ids = append(ids, f.User1ID)
		}
	}
	return ids, nil
}

func (r *FeedRepository) SharedActivities(userIDs []string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Preload("User").
		Where("user_id IN ? AND shared = ? AND is_completed = ?", userIDs, true, true).
		Order("start_time DESC").
		Find(&activities).Error
	return activities, err
}

func (r *FeedRepository) SharedSpots(userIDs []string) ([]models.SavedSpot, error) {
	var spots []models.SavedSpot
	err := r.db.Preload("User").
		Where("user_id IN ? AND shared = ?", userIDs, true).
		Order("created_at DESC").
		Find(&spots).Error
	return spots, err
}

func (r *FeedRepository) SharedTrips(userIDs []string) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.Preload("User").Preload("Items").
		Where("user_id IN ? AND shared = ?", userIDs, true).
		Order("created_at DESC").
		Find(&trips).Error
	return trips, err
}

func (r *FeedRepository) Achievements(userIDs []string) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := r.db.Preload("User").
		Where("user_id IN ?", userIDs).
		Order("earned_at DESC").
		Find(&achievements).Error
	return achievements, err
}

// LikesFor returns all like rows for the given subjects of one kind
func (r *FeedRepository) LikesFor(kind models.FeedKind, subjectIDs []string) ([]models.Like, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	var likes []models.Like
	err := r.db.Where("subject_kind = ? AND subject_id IN ?", kind, subjectIDs).Find(&likes).Error
	return likes, err
}

// CommentsFor returns all comment rows for the given subjects of one kind,
// oldest first, with authors preloaded
func (r *FeedRepository) CommentsFor(kind models.FeedKind, subjectIDs []string) ([]models.Comment, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("subject_kind = ? AND subject_id IN ?", kind, subjectIDs).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
