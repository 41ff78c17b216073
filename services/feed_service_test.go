package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailhead-api/models"
)

func post(kind models.FeedKind, id string, ts time.Time) models.FeedPost {
	return models.FeedPost{
		Ref:       models.FeedRef{Kind: kind, ID: id},
		Timestamp: ts,
	}
}

func TestMergePostsNewestFirst(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	posts := []models.FeedPost{
		post(models.FeedKindActivity, "a1", base.Add(1*time.Hour)),
		post(models.FeedKindTrip, "t1", base.Add(3*time.Hour)),
		post(models.FeedKindLocation, "l1", base.Add(2*time.Hour)),
	}

	merged := MergePosts(posts, 0)

	require.Len(t, merged, 3)
	assert.Equal(t, "t1", merged[0].Ref.ID)
	assert.Equal(t, "l1", merged[1].Ref.ID)
	assert.Equal(t, "a1", merged[2].Ref.ID)
}

func TestMergePostsTieBreaksOnRefID(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	posts := []models.FeedPost{
		post(models.FeedKindActivity, "b", ts),
		post(models.FeedKindActivity, "a", ts),
		post(models.FeedKindLocation, "c", ts),
	}

	merged := MergePosts(posts, 0)

	assert.Equal(t, "a", merged[0].Ref.ID)
	assert.Equal(t, "b", merged[1].Ref.ID)
	assert.Equal(t, "c", merged[2].Ref.ID)
}

func TestMergePostsCapsWindow(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	posts := make([]models.FeedPost, 0, FeedLimit+10)
	for i := 0; i < FeedLimit+10; i++ {
		posts = append(posts, post(models.FeedKindActivity, string(rune('a'+i%26))+string(rune('0'+i/26)), base.Add(time.Duration(i)*time.Minute)))
	}

	merged := MergePosts(posts, FeedLimit)

	require.Len(t, merged, FeedLimit)
	// The cap keeps the newest posts, so the oldest entries are dropped
	assert.True(t, merged[0].Timestamp.After(merged[len(merged)-1].Timestamp))
	assert.Equal(t, base.Add(time.Duration(FeedLimit+9)*time.Minute), merged[0].Timestamp)
}

func TestMergePostsNoCapWhenLimitZero(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	posts := []models.FeedPost{
		post(models.FeedKindActivity, "a1", base),
		post(models.FeedKindActivity, "a2", base.Add(time.Minute)),
	}

	assert.Len(t, MergePosts(posts, 0), 2)
}

func comment(id, userID, body string, replyTo *string, ts time.Time) models.Comment {
	return models.Comment{
		ID:        id,
		UserID:    userID,
		Body:      body,
		ReplyTo:   replyTo,
		CreatedAt: ts,
		User:      models.User{ID: userID, Name: userID},
	}
}

func TestBuildCommentTreeNestsReplies(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	parentID := "c1"

	comments := []models.Comment{
		comment("c1", "u1", "nice route!", nil, base),
		comment("c2", "u2", "thanks", &parentID, base.Add(time.Minute)),
		comment("c3", "u3", "where is this?", nil, base.Add(2*time.Minute)),
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 2)
	assert.Equal(t, "c1", tree[0].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "c2", tree[0].Replies[0].ID)
	assert.Equal(t, "c3", tree[1].ID)
	assert.Empty(t, tree[1].Replies)
}

func TestBuildCommentTreeDropsOrphanReplies(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	missing := "gone"

	comments := []models.Comment{
		comment("c1", "u1", "still here", nil, base),
		comment("c2", "u2", "reply to a deleted comment", &missing, base.Add(time.Minute)),
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 1)
	assert.Equal(t, "c1", tree[0].ID)
	assert.Empty(t, tree[0].Replies)
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildCommentTree(nil))
}
