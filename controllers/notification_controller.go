package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhead-api/models"
	"trailhead-api/realtime"
)

type NotificationController struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewNotificationController(db *gorm.DB, hub *realtime.Hub) *NotificationController {
	return &NotificationController{db: db, hub: hub}
}

// GetNotifications gets paginated notifications for the current user
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	notificationType := c.Query("type") // Optional filter by type

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	offset := (page - 1) * limit

	query := nc.db.Where("target_user_id = ?", userID)
	if notificationType != "" {
		query = query.Where("type = ?", notificationType)
	}

	var total int64
	query.Model(&models.Notification{}).Count(&total)

	var notifications []models.Notification
	if err := query.Preload("ActorUser").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, notification.ToResponse())
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	hasMore := page < totalPages

	response := models.PaginatedNotifications{
		Notifications: responses,
		Page:          page,
		Limit:         limit,
		Total:         total,
		HasMore:       hasMore,
		TotalPages:    totalPages,
	}

	c.JSON(http.StatusOK, response)
}

// GetNotificationStats gets notification statistics (unread count, etc.)
func (nc *NotificationController) GetNotificationStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var unreadCount int64
	var totalCount int64

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification stats"})
		return
	}

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ?", userID).
		Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification stats"})
		return
	}

	stats := models.NotificationStats{
		UnreadCount: int(unreadCount),
		TotalCount:  int(totalCount),
	}

	c.JSON(http.StatusOK, stats)
}

// MarkAsRead marks a notification as read
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	var notification models.Notification
	if err := nc.db.Where("id = ? AND target_user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find notification"})
		}
		return
	}

	if err := nc.db.Model(&notification).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead marks all notifications as read for the current user
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotification deletes a notification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	var notification models.Notification
	if err := nc.db.Where("id = ? AND target_user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find notification"})
		}
		return
	}

	if err := nc.db.Delete(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

// CreateNotification creates a new notification (internal use)
func (nc *NotificationController) CreateNotification(params models.CreateNotificationParams) error {
	// Don't notify users about their own actions
	if params.ActorUserID == params.TargetUserID {
		return nil
	}

	// Suppress duplicates for the same action within the last hour
	dupQuery := nc.db.Where("type = ? AND actor_user_id = ? AND target_user_id = ? AND created_at > ?",
		params.Type, params.ActorUserID, params.TargetUserID, time.Now().Add(-1*time.Hour))
	if params.SubjectID != nil {
		dupQuery = dupQuery.Where("subject_id = ?", *params.SubjectID)
	}

	var existingNotification models.Notification
	if err := dupQuery.First(&existingNotification).Error; err == nil {
		return nil
	}

	notification := models.Notification{
		ID:           uuid.New().String(),
		Type:         params.Type,
		ActorUserID:  params.ActorUserID,
		TargetUserID: params.TargetUserID,
		SubjectKind:  params.SubjectKind,
		SubjectID:    params.SubjectID,
		IsRead:       false,
	}

	if err := nc.db.Create(&notification).Error; err != nil {
		return err
	}

	nc.hub.NotifyChange(params.TargetUserID, "notifications", realtime.ActionInsert, notification.ID)
	return nil
}

// Helper methods for creating specific notification types

func (nc *NotificationController) CreateFriendRequestNotification(actorUserID, targetUserID string) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeFriendRequest,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
	})
}

func (nc *NotificationController) CreateFriendAcceptedNotification(actorUserID, targetUserID string) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeFriendAccepted,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
	})
}

func (nc *NotificationController) CreateLikeNotification(actorUserID, targetUserID string, subject models.FeedRef) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeLike,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		SubjectKind:  &subject.Kind,
		SubjectID:    &subject.ID,
	})
}

func (nc *NotificationController) CreateCommentNotification(actorUserID, targetUserID string, subject models.FeedRef) error {
	return nc.CreateNotification(models.CreateNotificationParams{
		Type:         models.NotificationTypeComment,
		ActorUserID:  actorUserID,
		TargetUserID: targetUserID,
		SubjectKind:  &subject.Kind,
		SubjectID:    &subject.ID,
	})
}
