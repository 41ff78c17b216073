package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhead-api/models"
	"trailhead-api/realtime"
	"trailhead-api/services"
)

type FeedController struct {
	db                     *gorm.DB
	hub                    *realtime.Hub
	feedService            *services.FeedService
	notificationController *NotificationController
}

func NewFeedController(db *gorm.DB, hub *realtime.Hub, feedService *services.FeedService, notificationController *NotificationController) *FeedController {
	return &FeedController{
		db:                     db,
		hub:                    hub,
		feedService:            feedService,
		notificationController: notificationController,
	}
}

// GetFeed returns the merged feed of the user's own shared items plus
// everything their friends shared, newest first.
func (fc *FeedController) GetFeed(c *gin.Context) {
	userID := c.GetString("user_id")

	feed, err := fc.feedService.LoadFeed(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	c.JSON(http.StatusOK, feed)
}

// GetFriendFeed returns a single friend's shared items. The requester must
// actually be friends with the target user.
func (fc *FeedController) GetFriendFeed(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID := c.Param("user_id")

	if userID != friendID && !fc.areFriends(userID, friendID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not friends with this user"})
		return
	}

	feed, err := fc.feedService.LoadFriendFeed(friendID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	c.JSON(http.StatusOK, feed)
}

// LikeSubject records a like on a feed post. A second like of the same
// subject by the same user is a conflict, so like/unlike always round-trips
// back to the starting state.
func (fc *FeedController) LikeSubject(c *gin.Context) {
	userID := c.GetString("user_id")

	ref, ok := fc.subjectRef(c)
	if !ok {
		return
	}

	ownerID, err := fc.subjectOwner(ref)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.Like
	if err := fc.db.Where("subject_kind = ? AND subject_id = ? AND user_id = ?",
		ref.Kind, ref.ID, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already liked"})
		return
	}

	like := models.Like{
		SubjectKind: ref.Kind,
		SubjectID:   ref.ID,
		UserID:      userID,
	}

	if err := fc.db.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	if err := fc.notificationController.CreateLikeNotification(userID, ownerID, ref); err != nil {
		fmt.Printf("Failed to create like notification: %v\n", err)
	}

	fc.hub.NotifyChange(ownerID, "likes", realtime.ActionInsert, ref.ID)

	c.JSON(http.StatusCreated, fc.likeState(ref, userID))
}

// UnlikeSubject removes the user's like from a feed post
func (fc *FeedController) UnlikeSubject(c *gin.Context) {
	userID := c.GetString("user_id")

	ref, ok := fc.subjectRef(c)
	if !ok {
		return
	}

	result := fc.db.Where("subject_kind = ? AND subject_id = ? AND user_id = ?",
		ref.Kind, ref.ID, userID).Delete(&models.Like{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
		return
	}

	if ownerID, err := fc.subjectOwner(ref); err == nil {
		fc.hub.NotifyChange(ownerID, "likes", realtime.ActionDelete, ref.ID)
	}

	c.JSON(http.StatusOK, fc.likeState(ref, userID))
}

type AddCommentRequest struct {
	Body    string  `json:"body" binding:"required"`
	ReplyTo *string `json:"reply_to"`
}

// AddComment posts a comment on a feed subject. reply_to must name a
// top-level comment of the same subject; deeper nesting is rejected.
func (fc *FeedController) AddComment(c *gin.Context) {
	userID := c.GetString("user_id")

	ref, ok := fc.subjectRef(c)
	if !ok {
		return
	}

	ownerID, err := fc.subjectOwner(ref)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ReplyTo != nil {
		var parent models.Comment
		if err := fc.db.Where("id = ? AND subject_kind = ? AND subject_id = ?",
			*req.ReplyTo, ref.Kind, ref.ID).First(&parent).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment not found"})
			return
		}
		if parent.ReplyTo != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot reply to a reply"})
			return
		}
	}

	comment := models.Comment{
		ID:          uuid.New().String(),
		SubjectKind: ref.Kind,
		SubjectID:   ref.ID,
		UserID:      userID,
		Body:        req.Body,
		ReplyTo:     req.ReplyTo,
	}

	if err := fc.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	if err := fc.notificationController.CreateCommentNotification(userID, ownerID, ref); err != nil {
		fmt.Printf("Failed to create comment notification: %v\n", err)
	}

	fc.hub.NotifyChange(ownerID, "comments", realtime.ActionInsert, comment.ID)

	fc.db.Preload("User").First(&comment, "id = ?", comment.ID)
	c.JSON(http.StatusCreated, comment)
}

// GetComments returns the comment tree for a feed subject
func (fc *FeedController) GetComments(c *gin.Context) {
	ref, ok := fc.subjectRef(c)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := fc.db.Preload("User").
		Where("subject_kind = ? AND subject_id = ?", ref.Kind, ref.ID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	tree := services.BuildCommentTree(comments)
	c.JSON(http.StatusOK, gin.H{"comments": tree, "count": len(comments)})
}

// DeleteComment removes the user's own comment along with its replies
func (fc *FeedController) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")
	commentID := c.Param("comment_id")

	var comment models.Comment
	if err := fc.db.First(&comment, "id = ? AND user_id = ?", commentID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or access denied"})
		return
	}

	err := fc.db.Transaction(func(tx *gorm.DB) error {
		if comment.ReplyTo == nil {
			if err := tx.Where("reply_to = ?", comment.ID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// subjectRef reads and validates the kind/id pair from the route
func (fc *FeedController) subjectRef(c *gin.Context) (models.FeedRef, bool) {
	ref := models.FeedRef{
		Kind: models.FeedKind(c.Param("kind")),
		ID:   c.Param("id"),
	}
	if !models.ValidFeedKind(ref.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post kind"})
		return models.FeedRef{}, false
	}
	return ref, true
}

// subjectOwner resolves who shared the referenced subject
func (fc *FeedController) subjectOwner(ref models.FeedRef) (string, error) {
	switch ref.Kind {
	case models.FeedKindActivity:
		var activity models.Activity
		if err := fc.db.Select("user_id").First(&activity, "id = ?", ref.ID).Error; err != nil {
			return "", err
		}
		return activity.UserID, nil
	case models.FeedKindLocation:
		var spot models.SavedSpot
		if err := fc.db.Select("user_id").First(&spot, "id = ?", ref.ID).Error; err != nil {
			return "", err
		}
		return spot.UserID, nil
	case models.FeedKindTrip:
		var trip models.Trip
		if err := fc.db.Select("user_id").First(&trip, "id = ?", ref.ID).Error; err != nil {
			return "", err
		}
		return trip.UserID, nil
	case models.FeedKindAchievement:
		var achievement models.Achievement
		if err := fc.db.Select("user_id").First(&achievement, "id = ?", ref.ID).Error; err != nil {
			return "", err
		}
		return achievement.UserID, nil
	}
	return "", gorm.ErrRecordNotFound
}

// likeState returns the canonical like list after a mutation so clients can
// replace their local state instead of patching it.
func (fc *FeedController) likeState(ref models.FeedRef, userID string) gin.H {
	var likes []models.Like
	fc.db.Where("subject_kind = ? AND subject_id = ?", ref.Kind, ref.ID).Find(&likes)

	userIDs := make([]string, 0, len(likes))
	liked := false
	for _, like := range likes {
		userIDs = append(userIDs, like.UserID)
		if like.UserID == userID {
			liked = true
		}
	}

	return gin.H{
		"ref":           ref,
		"like_user_ids": userIDs,
		"like_count":    len(userIDs),
		"liked":         liked,
	}
}

func (fc *FeedController) areFriends(user1ID, user2ID string) bool {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	var friendship models.Friendship
	err := fc.db.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).First(&friendship).Error
	return err == nil
}
