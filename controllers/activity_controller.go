package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhead-api/models"
	"trailhead-api/realtime"
	"trailhead-api/services"
	"trailhead-api/utils"
)

type ActivityController struct {
	db                 *gorm.DB
	hub                *realtime.Hub
	calendarService    *services.CalendarService
	importService      *services.ImportService
	achievementService *services.AchievementService
}

func NewActivityController(db *gorm.DB, hub *realtime.Hub, calendarService *services.CalendarService, importService *services.ImportService, achievementService *services.AchievementService) *ActivityController {
	return &ActivityController{
		db:                 db,
		hub:                hub,
		calendarService:    calendarService,
		importService:      importService,
		achievementService: achievementService,
	}
}

// awardMilestones runs after an activity completes. Failures are logged and
// never fail the request.
func (ac *ActivityController) awardMilestones(userID string) {
	awarded, err := ac.achievementService.CheckActivityMilestones(userID)
	if err != nil {
		return
	}
	for _, achievement := range awarded {
		ac.hub.NotifyChange(userID, "achievements", realtime.ActionInsert, achievement.ID)
	}
}

type CreateActivityRequest struct {
	Type         models.ActivityType `json:"type" binding:"required"`
	Distance     float64             `json:"distance"`
	Duration     int                 `json:"duration"`
	AverageSpeed float64             `json:"average_speed"`
	MaxSpeed     float64             `json:"max_speed"`
	Route        []models.Coordinate `json:"route"`
	StartTime    time.Time           `json:"start_time" binding:"required"`
	EndTime      *time.Time          `json:"end_time"`
	ActivityDate *time.Time          `json:"activity_date"`
	Rating       int                 `json:"rating"`
	Notes        string              `json:"notes"`
	Shared       bool                `json:"shared"`
}

func (ac *ActivityController) GetActivities(c *gin.Context) {
	userID := c.GetString("user_id")

	query := ac.db.Where("user_id = ?", userID)

	if activityType := c.Query("type"); activityType != "" {
		query = query.Where("type = ?", activityType)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("start_time >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("start_time <= ?", to)
	}

	var activities []models.Activity
	if err := query.Order("start_time DESC").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func (ac *ActivityController) CreateActivity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidActivityType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity type"})
		return
	}
	if !utils.IsValidRating(req.Rating) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
		return
	}

	activity := models.Activity{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         req.Type,
		Distance:     req.Distance,
		Duration:     req.Duration,
		AverageSpeed: req.AverageSpeed,
		MaxSpeed:     req.MaxSpeed,
		Route:        models.CoordSlice(req.Route),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ActivityDate: req.ActivityDate,
		Rating:       req.Rating,
		Notes:        req.Notes,
		Shared:       req.Shared,
		IsCompleted:  true,
	}

	if err := ac.db.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	ac.hub.NotifyChange(userID, "activities", realtime.ActionInsert, activity.ID)
	go ac.awardMilestones(userID)

	c.JSON(http.StatusCreated, activity)
}

func (ac *ActivityController) GetActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.db.First(&activity, "id = ? AND user_id = ?", activityID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	c.JSON(http.StatusOK, activity)
}

type UpdateActivityRequest struct {
	Type         *models.ActivityType `json:"type"`
	Distance     *float64             `json:"distance"`
	Duration     *int                 `json:"duration"`
	AverageSpeed *float64             `json:"average_speed"`
	MaxSpeed     *float64             `json:"max_speed"`
	ActivityDate *time.Time           `json:"activity_date"`
	Rating       *int                 `json:"rating"`
	Notes        *string              `json:"notes"`
	Shared       *bool                `json:"shared"`
}

func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.db.First(&activity, "id = ? AND user_id = ?", activityID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found or access denied"})
		return
	}

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Type != nil {
		if !models.ValidActivityType(*req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity type"})
			return
		}
		updates["type"] = *req.Type
	}
	if req.Distance != nil {
		updates["distance"] = *req.Distance
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.AverageSpeed != nil {
		updates["average_speed"] = *req.AverageSpeed
	}
	if req.MaxSpeed != nil {
		updates["max_speed"] = *req.MaxSpeed
	}
	if req.ActivityDate != nil {
		updates["activity_date"] = *req.ActivityDate
	}
	if req.Rating != nil {
		if !utils.IsValidRating(*req.Rating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
			return
		}
		updates["rating"] = *req.Rating
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Shared != nil {
		updates["shared"] = *req.Shared
	}

	if err := ac.db.Model(&activity).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
		return
	}

	ac.hub.NotifyChange(userID, "activities", realtime.ActionUpdate, activity.ID)

	// Return the canonical row so the client never has to guess
	ac.db.First(&activity, "id = ?", activity.ID)
	c.JSON(http.StatusOK, activity)
}

func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.db.First(&activity, "id = ? AND user_id = ?", activityID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found or access denied"})
		return
	}

	// Remove interactions referencing the activity first
	ac.db.Where("subject_kind = ? AND subject_id = ?", models.FeedKindActivity, activityID).Delete(&models.Like{})
	ac.db.Where("subject_kind = ? AND subject_id = ?", models.FeedKindActivity, activityID).Delete(&models.Comment{})
	ac.db.Where("item_type = ? AND item_id = ?", models.TripItemTypeActivity, activityID).Delete(&models.TripItem{})

	if err := ac.db.Delete(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	ac.hub.NotifyChange(userID, "activities", realtime.ActionDelete, activityID)

	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted successfully"})
}

type StartActivityRequest struct {
	Type models.ActivityType `json:"type" binding:"required"`
}

// StartActivity opens a live-tracked activity; track points stream in until stop
func (ac *ActivityController) StartActivity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req StartActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidActivityType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity type"})
		return
	}

	// Only one live activity at a time
	var inProgress models.Activity
	if err := ac.db.Where("user_id = ? AND is_completed = ?", userID, false).First(&inProgress).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An activity is already in progress"})
		return
	}

	activity := models.Activity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      req.Type,
		Route:     models.CoordSlice{},
		StartTime: time.Now(),
	}

	if err := ac.db.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start activity"})
		return
	}

	ac.hub.NotifyChange(userID, "activities", realtime.ActionInsert, activity.ID)

	c.JSON(http.StatusCreated, activity)
}

type TrackPointRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

func (ac *ActivityController) AddTrackPoint(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var req TrackPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidLatitude(req.Latitude) || !utils.IsValidLongitude(req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	var activity models.Activity
	if err := ac.db.First(&activity, "id = ? AND user_id = ? AND is_completed = ?", activityID, userID, false).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found or already completed"})
		return
	}

	activity.Route = append(activity.Route, models.Coordinate{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})

	if err := ac.db.Model(&activity).Update("route", activity.Route).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add track point"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track point added", "points": len(activity.Route)})
}

type StopActivityRequest struct {
	Distance     float64 `json:"distance"`
	AverageSpeed float64 `json:"average_speed"`
	MaxSpeed     float64 `json:"max_speed"`
	Rating       int     `json:"rating"`
	Notes        string  `json:"notes"`
	Shared       bool    `json:"shared"`
}

func (ac *ActivityController) StopActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.db.First(&activity, "id = ? AND user_id = ? AND is_completed = ?", activityID, userID, false).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found or already completed"})
		return
	}

	var req StopActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidRating(req.Rating) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"end_time":      now,
		"duration":      int(now.Sub(activity.StartTime).Seconds()),
		"distance":      req.Distance,
		"average_speed": req.AverageSpeed,
		"max_speed":     req.MaxSpeed,
		"rating":        req.Rating,
		"notes":         req.Notes,
		"shared":        req.Shared,
		"is_completed":  true,
	}

	if err := ac.db.Model(&activity).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop activity"})
		return
	}

	ac.hub.NotifyChange(userID, "activities", realtime.ActionUpdate, activity.ID)
	go ac.awardMilestones(userID)

	ac.db.First(&activity, "id = ?", activity.ID)
	c.JSON(http.StatusOK, activity)
}

// ImportActivity accepts a FIT file upload and stores the decoded activity
func (ac *ActivityController) ImportActivity(c *gin.Context) {
	userID := c.GetString("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing activity file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	activity, err := ac.importService.ImportFIT(file, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to decode activity file"})
		return
	}

	if err := ac.db.Create(activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save imported activity"})
		return
	}

	ac.hub.NotifyChange(userID, "activities", realtime.ActionInsert, activity.ID)
	go ac.awardMilestones(userID)

	c.JSON(http.StatusCreated, activity)
}

// ExportActivity returns the recorded route as a GPX document
func (ac *ActivityController) ExportActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.db.First(&activity, "id = ? AND user_id = ?", activityID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	if len(activity.Route) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Activity has no recorded route"})
		return
	}

	gpx := utils.GenerateGPX(&activity)
	c.Header("Content-Disposition", "attachment; filename=activity-"+activity.ID+".gpx")
	c.Data(http.StatusOK, "application/gpx+xml", []byte(gpx))
}

// GetCalendar returns the 42-cell month grid with per-day activities/spots
// and month statistics. year/month default to the current month.
func (ac *ActivityController) GetCalendar(c *gin.Context) {
	userID := c.GetString("user_id")

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	var activities []models.Activity
	if err := ac.db.Where("user_id = ?", userID).Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	var spots []models.SavedSpot
	if err := ac.db.Where("user_id = ?", userID).Find(&spots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}

	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	calendar := ac.calendarService.BuildMonth(ref, now, activities, spots)

	c.JSON(http.StatusOK, calendar)
}
