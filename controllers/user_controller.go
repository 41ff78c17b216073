package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trailhead-api/models"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.Preload("Achievements").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// GetUser returns another user's public profile
func (uc *UserController) GetUser(c *gin.Context) {
	targetUserID := c.Param("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user.Summary())
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Name   *string `json:"name"`
		Avatar *string `json:"avatar"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if err := uc.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	var user models.User
	uc.db.First(&user, "id = ?", userID)
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// GetStatistics aggregates the user's lifetime totals for the profile screen
func (uc *UserController) GetStatistics(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var activities []models.Activity
	if err := uc.db.Where("user_id = ? AND is_completed = ?", userID, true).Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	stats := models.UserStatistics{
		TotalActivities: len(activities),
		ByActivityType:  make(map[string]int),
	}
	for _, activity := range activities {
		stats.TotalDistance += activity.Distance
		stats.TotalDuration += activity.Duration
		stats.ByActivityType[string(activity.Type)]++
	}

	var spotsCount int64
	uc.db.Model(&models.SavedSpot{}).Where("user_id = ?", userID).Count(&spotsCount)
	stats.TotalSpots = int(spotsCount)

	var tripsCount int64
	uc.db.Model(&models.Trip{}).Where("user_id = ?", userID).Count(&tripsCount)
	stats.TotalTrips = int(tripsCount)

	c.JSON(http.StatusOK, stats)
}

// SearchUsers finds users by name or handle for the friend-request screen
func (uc *UserController) SearchUsers(c *gin.Context) {
	userID := c.GetString("user_id")
	query := strings.TrimSpace(c.Query("q"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	pattern := "%" + query + "%"

	var users []models.User
	if err := uc.db.Where("(name LIKE ? OR handle LIKE ?) AND id != ?", pattern, pattern, userID).
		Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	results := make([]models.UserSummary, 0, len(users))
	for i := range users {
		results = append(results, users[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{"users": results})
}
