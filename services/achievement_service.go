package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhead-api/models"
)

// AchievementService awards milestone achievements when activities complete.
// Awards are idempotent: each title exists at most once per user.
type AchievementService struct {
	db *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

type milestone struct {
	title       string
	description string
	earned      func(count int64, distance float64) bool
}

var activityMilestones = []milestone{
	{
		title:       "First Steps",
		description: "Completed your first activity",
		earned:      func(count int64, _ float64) bool { return count >= 1 },
	},
	{
		title:       "Regular",
		description: "Completed 10 activities",
		earned:      func(count int64, _ float64) bool { return count >= 10 },
	},
	{
		title:       "Centurion",
		description: "Covered 100 km across all activities",
		earned:      func(_ int64, distance float64) bool { return distance >= 100_000 },
	},
	{
		title:       "Long Hauler",
		description: "Covered 1000 km across all activities",
		earned:      func(_ int64, distance float64) bool { return distance >= 1_000_000 },
	},
}

// CheckActivityMilestones awards any newly earned milestones and returns them
func (as *AchievementService) CheckActivityMilestones(userID string) ([]models.Achievement, error) {
	var count int64
	if err := as.db.Model(&models.Activity{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error; err != nil {
		return nil, err
	}

	var totalDistance float64
	if err := as.db.Model(&models.Activity{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Select("COALESCE(SUM(distance), 0)").
		Scan(&totalDistance).Error; err != nil {
		return nil, err
	}

	var awarded []models.Achievement
	for _, m := range activityMilestones {
		if !m.earned(count, totalDistance) {
			continue
		}

		var existing models.Achievement
		if err := as.db.Where("user_id = ? AND title = ?", userID, m.title).First(&existing).Error; err == nil {
			continue
		}

		achievement := models.Achievement{
			ID:          uuid.New().String(),
			UserID:      userID,
			Title:       m.title,
			Description: m.description,
			EarnedAt:    time.Now(),
		}
		if err := as.db.Create(&achievement).Error; err != nil {
			fmt.Printf("Failed to award achievement %q: %v\n", m.title, err)
			continue
		}
		awarded = append(awarded, achievement)
	}

	return awarded, nil
}
