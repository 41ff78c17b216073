package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trailhead-api/models"
	"trailhead-api/realtime"
	"trailhead-api/repositories"
	"trailhead-api/services"
)

type likeStateResponse struct {
	Ref         models.FeedRef `json:"ref"`
	LikeUserIDs []string       `json:"like_user_ids"`
	LikeCount   int            `json:"like_count"`
	Liked       bool           `json:"liked"`
}

func newFeedTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "feed.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.SavedSpot{},
		&models.Trip{},
		&models.Achievement{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	))

	hub := realtime.NewHub()
	go hub.Run()

	notificationController := NewNotificationController(db, hub)
	feedService := services.NewFeedService(repositories.NewFeedRepository(db))
	feedController := NewFeedController(db, hub, feedService, notificationController)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-User-ID"))
	})
	r.POST("/feed/:kind/:id/like", feedController.LikeSubject)
	r.DELETE("/feed/:kind/:id/like", feedController.UnlikeSubject)

	return r, db
}

func seedSharedActivity(t *testing.T, db *gorm.DB) (owner, liker models.User, activity models.Activity) {
	t.Helper()

	owner = models.User{ID: uuid.New().String(), Name: "Owner", Handle: "owner", Email: "owner@example.com", Password: "x"}
	liker = models.User{ID: uuid.New().String(), Name: "Liker", Handle: "liker", Email: "liker@example.com", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&liker).Error)

	activity = models.Activity{
		ID:          uuid.New().String(),
		UserID:      owner.ID,
		Type:        models.ActivityTypeHike,
		Distance:    5000,
		Duration:    3600,
		StartTime:   time.Now(),
		Shared:      true,
		IsCompleted: true,
	}
	require.NoError(t, db.Create(&activity).Error)
	return owner, liker, activity
}

func doFeedRequest(r *gin.Engine, method, path, userID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-User-ID", userID)
	r.ServeHTTP(w, req)
	return w
}

func parseLikeState(t *testing.T, w *httptest.ResponseRecorder) likeStateResponse {
	t.Helper()
	var state likeStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func TestLikeThenUnlikeRestoresOriginalState(t *testing.T) {
	r, db := newFeedTestRouter(t)
	owner, liker, activity := seedSharedActivity(t, db)
	path := "/feed/activity/" + activity.ID + "/like"

	w := doFeedRequest(r, http.MethodPost, path, liker.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	state := parseLikeState(t, w)
	assert.True(t, state.Liked)
	assert.Equal(t, 1, state.LikeCount)
	assert.Equal(t, []string{liker.ID}, state.LikeUserIDs)
	assert.Equal(t, models.FeedKindActivity, state.Ref.Kind)
	assert.Equal(t, activity.ID, state.Ref.ID)

	var notificationCount int64
	db.Model(&models.Notification{}).
		Where("type = ? AND target_user_id = ? AND actor_user_id = ?",
			models.NotificationTypeLike, owner.ID, liker.ID).
		Count(&notificationCount)
	assert.Equal(t, int64(1), notificationCount)

	w = doFeedRequest(r, http.MethodDelete, path, liker.ID)
	require.Equal(t, http.StatusOK, w.Code)
	state = parseLikeState(t, w)
	assert.False(t, state.Liked)
	assert.Equal(t, 0, state.LikeCount)
	assert.Empty(t, state.LikeUserIDs)

	var likeCount int64
	db.Model(&models.Like{}).
		Where("subject_kind = ? AND subject_id = ?", models.FeedKindActivity, activity.ID).
		Count(&likeCount)
	assert.Equal(t, int64(0), likeCount, "like set should return to its pre-like state")

	// The subject stays likeable after the round trip
	w = doFeedRequest(r, http.MethodPost, path, liker.ID)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLikeTwiceIsConflict(t *testing.T) {
	r, db := newFeedTestRouter(t)
	_, liker, activity := seedSharedActivity(t, db)
	path := "/feed/activity/" + activity.ID + "/like"

	w := doFeedRequest(r, http.MethodPost, path, liker.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doFeedRequest(r, http.MethodPost, path, liker.ID)
	assert.Equal(t, http.StatusConflict, w.Code)

	var likeCount int64
	db.Model(&models.Like{}).
		Where("subject_kind = ? AND subject_id = ? AND user_id = ?",
			models.FeedKindActivity, activity.ID, liker.ID).
		Count(&likeCount)
	assert.Equal(t, int64(1), likeCount)
}

func TestUnlikeWithoutExistingLike(t *testing.T) {
	r, db := newFeedTestRouter(t)
	_, liker, activity := seedSharedActivity(t, db)

	w := doFeedRequest(r, http.MethodDelete, "/feed/activity/"+activity.ID+"/like", liker.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeUnknownSubject(t *testing.T) {
	r, db := newFeedTestRouter(t)
	_, liker, _ := seedSharedActivity(t, db)

	w := doFeedRequest(r, http.MethodPost, "/feed/activity/"+uuid.New().String()+"/like", liker.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeInvalidKind(t *testing.T) {
	r, db := newFeedTestRouter(t)
	_, liker, activity := seedSharedActivity(t, db)

	w := doFeedRequest(r, http.MethodPost, "/feed/playlist/"+activity.ID+"/like", liker.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
