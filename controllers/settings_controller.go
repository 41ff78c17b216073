package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trailhead-api/models"
	"trailhead-api/utils"
)

type SettingsController struct {
	db *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{db: db}
}

// GetSettings returns the user's settings, creating the default row on first
// read so clients never see a missing-settings state.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	userID := c.GetString("user_id")

	settings, err := sc.loadOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

type UpdateSettingsRequest struct {
	UnitSystem       *models.UnitSystem `json:"unit_system"`
	DistanceDecimals *int               `json:"distance_decimals"`
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	userID := c.GetString("user_id")

	settings, err := sc.loadOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.UnitSystem != nil {
		if *req.UnitSystem != models.UnitSystemMetric && *req.UnitSystem != models.UnitSystemImperial {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unit system must be metric or imperial"})
			return
		}
		updates["unit_system"] = *req.UnitSystem
	}
	if req.DistanceDecimals != nil {
		if *req.DistanceDecimals < 0 || *req.DistanceDecimals > 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Distance decimals must be between 0 and 3"})
			return
		}
		updates["distance_decimals"] = *req.DistanceDecimals
	}

	if err := sc.db.Model(settings).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	sc.db.First(settings, "id = ?", settings.ID)
	c.JSON(http.StatusOK, settings)
}

// PreviewFormats shows how a sample (or supplied) distance, speed and
// elevation render under the user's current settings.
func (sc *SettingsController) PreviewFormats(c *gin.Context) {
	userID := c.GetString("user_id")

	settings, err := sc.loadOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	distance, _ := strconv.ParseFloat(c.DefaultQuery("distance", "12345"), 64)
	speed, _ := strconv.ParseFloat(c.DefaultQuery("speed", "21.5"), 64)
	elevation, _ := strconv.ParseFloat(c.DefaultQuery("elevation", "480"), 64)
	duration, _ := strconv.Atoi(c.DefaultQuery("duration", "4980"))

	c.JSON(http.StatusOK, gin.H{
		"unit_system": settings.UnitSystem,
		"distance":    utils.FormatDistance(distance, settings.UnitSystem, settings.DistanceDecimals),
		"speed":       utils.FormatSpeed(speed, settings.UnitSystem),
		"elevation":   utils.FormatElevation(elevation, settings.UnitSystem),
		"duration":    utils.FormatDuration(duration),
	})
}

func (sc *SettingsController) loadOrCreate(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := sc.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = models.DefaultSettings(userID)
	if err := sc.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
