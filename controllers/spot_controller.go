package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhead-api/models"
	"trailhead-api/realtime"
	"trailhead-api/utils"
)

type SpotController struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewSpotController(db *gorm.DB, hub *realtime.Hub) *SpotController {
	return &SpotController{db: db, hub: hub}
}

type CreateSpotRequest struct {
	Name      string     `json:"name" binding:"required"`
	Category  string     `json:"category"`
	Latitude  float64    `json:"latitude" binding:"required"`
	Longitude float64    `json:"longitude" binding:"required"`
	Photos    []string   `json:"photos"`
	Rating    int        `json:"rating"`
	VisitDate *time.Time `json:"visit_date"`
	Notes     string     `json:"notes"`
	Shared    bool       `json:"shared"`
}

func (sc *SpotController) GetSpots(c *gin.Context) {
	userID := c.GetString("user_id")

	query := sc.db.Where("user_id = ?", userID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var spots []models.SavedSpot
	if err := query.Order("created_at DESC").Find(&spots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": spots})
}

func (sc *SpotController) CreateSpot(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidLatitude(req.Latitude) || !utils.IsValidLongitude(req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}
	if !utils.IsValidRating(req.Rating) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
		return
	}

	spot := models.SavedSpot{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Category:  req.Category,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Photos:    models.StringSlice(req.Photos),
		Rating:    req.Rating,
		VisitDate: req.VisitDate,
		Notes:     req.Notes,
		Shared:    req.Shared,
	}

	if err := sc.db.Create(&spot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}

	sc.hub.NotifyChange(userID, "locations", realtime.ActionInsert, spot.ID)

	c.JSON(http.StatusCreated, spot)
}

func (sc *SpotController) GetSpot(c *gin.Context) {
	userID := c.GetString("user_id")
	spotID := c.Param("id")

	var spot models.SavedSpot
	if err := sc.db.First(&spot, "id = ? AND user_id = ?", spotID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	c.JSON(http.StatusOK, spot)
}

type UpdateSpotRequest struct {
	Name      *string    `json:"name"`
	Category  *string    `json:"category"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Photos    []string   `json:"photos"`
	Rating    *int       `json:"rating"`
	VisitDate *time.Time `json:"visit_date"`
	Notes     *string    `json:"notes"`
	Shared    *bool      `json:"shared"`
}

func (sc *SpotController) UpdateSpot(c *gin.Context) {
	userID := c.GetString("user_id")
	spotID := c.Param("id")

	var spot models.SavedSpot
	if err := sc.db.First(&spot, "id = ? AND user_id = ?", spotID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found or access denied"})
		return
	}

	var req UpdateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Latitude != nil {
		if !utils.IsValidLatitude(*req.Latitude) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
			return
		}
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		if !utils.IsValidLongitude(*req.Longitude) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
			return
		}
		updates["longitude"] = *req.Longitude
	}
	if req.Photos != nil {
		updates["photos"] = models.StringSlice(req.Photos)
	}
	if req.Rating != nil {
		if !utils.IsValidRating(*req.Rating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
			return
		}
		updates["rating"] = *req.Rating
	}
	if req.VisitDate != nil {
		updates["visit_date"] = *req.VisitDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Shared != nil {
		updates["shared"] = *req.Shared
	}

	if err := sc.db.Model(&spot).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}

	sc.hub.NotifyChange(userID, "locations", realtime.ActionUpdate, spot.ID)

	sc.db.First(&spot, "id = ?", spot.ID)
	c.JSON(http.StatusOK, spot)
}

func (sc *SpotController) DeleteSpot(c *gin.Context) {
	userID := c.GetString("user_id")
	spotID := c.Param("id")

	var spot models.SavedSpot
	if err := sc.db.First(&spot, "id = ? AND user_id = ?", spotID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found or access denied"})
		return
	}

	sc.db.Where("subject_kind = ? AND subject_id = ?", models.FeedKindLocation, spotID).Delete(&models.Like{})
	sc.db.Where("subject_kind = ? AND subject_id = ?", models.FeedKindLocation, spotID).Delete(&models.Comment{})
	sc.db.Where("item_type = ? AND item_id = ?", models.TripItemTypeSpot, spotID).Delete(&models.TripItem{})

	if err := sc.db.Delete(&spot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}

	sc.hub.NotifyChange(userID, "locations", realtime.ActionDelete, spotID)

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
