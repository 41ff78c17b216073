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

type WishlistController struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewWishlistController(db *gorm.DB, hub *realtime.Hub) *WishlistController {
	return &WishlistController{db: db, hub: hub}
}

type CreateWishlistItemRequest struct {
	Name       string     `json:"name" binding:"required"`
	Category   string     `json:"category"`
	Latitude   float64    `json:"latitude" binding:"required"`
	Longitude  float64    `json:"longitude" binding:"required"`
	Priority   int        `json:"priority"`
	Notes      string     `json:"notes"`
	TargetDate *time.Time `json:"target_date"`
}

func (wc *WishlistController) GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var items []models.WishlistItem
	if err := wc.db.Where("user_id = ?", userID).
		Order("priority ASC, created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (wc *WishlistController) CreateWishlistItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidLatitude(req.Latitude) || !utils.IsValidLongitude(req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	priority := req.Priority
	if priority == 0 {
		priority = 2
	}
	if !utils.IsValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be between 1 and 3"})
		return
	}

	item := models.WishlistItem{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       req.Name,
		Category:   req.Category,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Priority:   priority,
		Notes:      req.Notes,
		TargetDate: req.TargetDate,
	}

	if err := wc.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wishlist item"})
		return
	}

	wc.hub.NotifyChange(userID, "wishlist_items", realtime.ActionInsert, item.ID)

	c.JSON(http.StatusCreated, item)
}

type UpdateWishlistItemRequest struct {
	Name       *string    `json:"name"`
	Category   *string    `json:"category"`
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	Priority   *int       `json:"priority"`
	Notes      *string    `json:"notes"`
	TargetDate *time.Time `json:"target_date"`
}

func (wc *WishlistController) UpdateWishlistItem(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	var item models.WishlistItem
	if err := wc.db.First(&item, "id = ? AND user_id = ?", itemID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found or access denied"})
		return
	}

	var req UpdateWishlistItemRequest
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
	if req.Priority != nil {
		if !utils.IsValidPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be between 1 and 3"})
			return
		}
		updates["priority"] = *req.Priority
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.TargetDate != nil {
		updates["target_date"] = *req.TargetDate
	}

	if err := wc.db.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist item"})
		return
	}

	wc.hub.NotifyChange(userID, "wishlist_items", realtime.ActionUpdate, item.ID)

	wc.db.First(&item, "id = ?", item.ID)
	c.JSON(http.StatusOK, item)
}

func (wc *WishlistController) DeleteWishlistItem(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	var item models.WishlistItem
	if err := wc.db.First(&item, "id = ? AND user_id = ?", itemID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found or access denied"})
		return
	}

	if err := wc.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wishlist item"})
		return
	}

	wc.hub.NotifyChange(userID, "wishlist_items", realtime.ActionDelete, itemID)

	c.JSON(http.StatusOK, gin.H{"message": "Wishlist item deleted successfully"})
}
