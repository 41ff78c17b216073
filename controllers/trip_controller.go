package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhead-api/models"
	"trailhead-api/realtime"
)

type TripController struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewTripController(db *gorm.DB, hub *realtime.Hub) *TripController {
	return &TripController{db: db, hub: hub}
}

type CreateTripRequest struct {
	Name       string     `json:"name" binding:"required"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CoverPhoto *string    `json:"cover_photo"`
	Shared     bool       `json:"shared"`
}

func (tc *TripController) GetTrips(c *gin.Context) {
	userID := c.GetString("user_id")

	var trips []models.Trip
	if err := tc.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("trip_items.position ASC")
	}).Where("user_id = ?", userID).Order("created_at DESC").Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

func (tc *TripController) CreateTrip(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not be before start date"})
		return
	}

	trip := models.Trip{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CoverPhoto: req.CoverPhoto,
		Shared:     req.Shared,
	}

	if err := tc.db.Create(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	tc.hub.NotifyChange(userID, "trips", realtime.ActionInsert, trip.ID)

	c.JSON(http.StatusCreated, trip)
}

// GetTrip returns the trip with its items hydrated by id lookup
func (tc *TripController) GetTrip(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	var trip models.Trip
	if err := tc.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("trip_items.position ASC")
	}).First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	detail := models.TripDetail{
		Trip:        trip,
		ItemDetails: make([]models.TripItemDetail, 0, len(trip.Items)),
	}

	for _, item := range trip.Items {
		itemDetail := models.TripItemDetail{TripItem: item}

		switch item.ItemType {
		case models.TripItemTypeActivity:
			var activity models.Activity
			if err := tc.db.First(&activity, "id = ?", item.ItemID).Error; err == nil {
				itemDetail.Activity = &activity
			}
		case models.TripItemTypeSpot:
			var spot models.SavedSpot
			if err := tc.db.First(&spot, "id = ?", item.ItemID).Error; err == nil {
				itemDetail.Spot = &spot
			}
		}

		detail.ItemDetails = append(detail.ItemDetails, itemDetail)
	}

	c.JSON(http.StatusOK, detail)
}

type UpdateTripRequest struct {
	Name       *string    `json:"name"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CoverPhoto *string    `json:"cover_photo"`
	Shared     *bool      `json:"shared"`
}

func (tc *TripController) UpdateTrip(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	var trip models.Trip
	if err := tc.db.First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.CoverPhoto != nil {
		updates["cover_photo"] = *req.CoverPhoto
	}
	if req.Shared != nil {
		updates["shared"] = *req.Shared
	}

	if err := tc.db.Model(&trip).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}

	tc.hub.NotifyChange(userID, "trips", realtime.ActionUpdate, trip.ID)

	tc.db.First(&trip, "id = ?", trip.ID)
	c.JSON(http.StatusOK, trip)
}

func (tc *TripController) DeleteTrip(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	var trip models.Trip
	if err := tc.db.First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	// Delete items and interactions first
	tc.db.Where("trip_id = ?", tripID).Delete(&models.TripItem{})
	tc.db.Where("subject_kind = ? AND subject_id = ?", models.FeedKindTrip, tripID).Delete(&models.Like{})
	tc.db.Where("subject_kind = ? AND subject_id = ?", models.FeedKindTrip, tripID).Delete(&models.Comment{})

	if err := tc.db.Delete(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	tc.hub.NotifyChange(userID, "trips", realtime.ActionDelete, tripID)

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

type AddTripItemRequest struct {
	ItemType models.TripItemType `json:"item_type" binding:"required"`
	ItemID   string              `json:"item_id" binding:"required"`
}

func (tc *TripController) AddTripItem(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	var trip models.Trip
	if err := tc.db.First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	var req AddTripItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The referenced row must exist and belong to the user
	switch req.ItemType {
	case models.TripItemTypeActivity:
		var activity models.Activity
		if err := tc.db.First(&activity, "id = ? AND user_id = ?", req.ItemID, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
	case models.TripItemTypeSpot:
		var spot models.SavedSpot
		if err := tc.db.First(&spot, "id = ? AND user_id = ?", req.ItemID, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item type"})
		return
	}

	var existing models.TripItem
	if err := tc.db.Where("trip_id = ? AND item_type = ? AND item_id = ?", tripID, req.ItemType, req.ItemID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Item already in trip"})
		return
	}

	var count int64
	tc.db.Model(&models.TripItem{}).Where("trip_id = ?", tripID).Count(&count)

	item := models.TripItem{
		TripID:   tripID,
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
		Position: int(count),
		AddedAt:  time.Now(),
	}

	if err := tc.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to trip"})
		return
	}

	tc.hub.NotifyChange(userID, "trip_items", realtime.ActionInsert, tripID)

	c.JSON(http.StatusCreated, item)
}

func (tc *TripController) RemoveTripItem(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")
	itemID := c.Param("item_id")

	var trip models.Trip
	if err := tc.db.First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	var item models.TripItem
	if err := tc.db.First(&item, "id = ? AND trip_id = ?", itemID, tripID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip item not found"})
		return
	}

	if err := tc.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove trip item"})
		return
	}

	// Compact remaining positions
	tc.db.Model(&models.TripItem{}).
		Where("trip_id = ? AND position > ?", tripID, item.Position).
		UpdateColumn("position", gorm.Expr("position - 1"))

	tc.hub.NotifyChange(userID, "trip_items", realtime.ActionDelete, tripID)

	c.JSON(http.StatusOK, gin.H{"message": "Trip item removed successfully"})
}

type ReorderTripItemsRequest struct {
	ItemIDs []uint `json:"item_ids" binding:"required"`
}

// ReorderTripItems rewrites positions to match the given item id order
func (tc *TripController) ReorderTripItems(c *gin.Context) {
	userID := c.GetString("user_id")
	tripID := c.Param("id")

	var trip models.Trip
	if err := tc.db.First(&trip, "id = ? AND user_id = ?", tripID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found or access denied"})
		return
	}

	var req ReorderTripItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var items []models.TripItem
	if err := tc.db.Where("trip_id = ?", tripID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trip items"})
		return
	}

	if len(req.ItemIDs) != len(items) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item list does not match trip contents"})
		return
	}

	known := make(map[uint]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
	}
	for _, id := range req.ItemIDs {
		if !known[id] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item list does not match trip contents"})
			return
		}
	}

	err := tc.db.Transaction(func(tx *gorm.DB) error {
		for position, id := range req.ItemIDs {
			if err := tx.Model(&models.TripItem{}).
				Where("id = ? AND trip_id = ?", id, tripID).
				UpdateColumn("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder trip items"})
		return
	}

	tc.hub.NotifyChange(userID, "trip_items", realtime.ActionUpdate, tripID)

	c.JSON(http.StatusOK, gin.H{"message": "Trip items reordered successfully"})
}
