package services

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"trailhead-api/models"
	"trailhead-api/repositories"
)

// FeedLimit caps the aggregate feed window
const FeedLimit = 50

// FeedService assembles the merged reverse-chronological feed out of the
// per-table rows the repository fetches.
type FeedService struct {
	repo *repositories.FeedRepository
}

func NewFeedService(repo *repositories.FeedRepository) *FeedService {
	return &FeedService{repo: repo}
}

// LoadFeed builds the aggregate feed for a user: own shared items plus
// everything their friends shared, merged and capped to FeedLimit.
func (s *FeedService) LoadFeed(userID string) (*models.FeedResponse, error) {
	friendIDs, err := s.repo.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	sourceIDs := append(friendIDs, userID)

	posts, err := s.loadPosts(sourceIDs)
	if err != nil {
		return nil, err
	}

	posts = MergePosts(posts, FeedLimit)
	return &models.FeedResponse{Posts: posts, Count: len(posts)}, nil
}

// LoadFriendFeed builds the same merge scoped to a single friend. The result
// is independent of the aggregate feed, not a filtered view of it.
func (s *FeedService) LoadFriendFeed(friendID string) (*models.FeedResponse, error) {
	posts, err := s.loadPosts([]string{friendID})
	if err != nil {
		return nil, err
	}

	posts = MergePosts(posts, 0)
	return &models.FeedResponse{Posts: posts, Count: len(posts)}, nil
}

// loadPosts fans out the independent table reads concurrently and joins the
// results. The subject queries have no ordering dependency among themselves;
// only likes/comments depend on the ids of the first batch.
func (s *FeedService) loadPosts(userIDs []string) ([]models.FeedPost, error) {
	var (
		activities   []models.Activity
		spots        []models.SavedSpot
		trips        []models.Trip
		achievements []models.Achievement
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		activities, err = s.repo.SharedActivities(userIDs)
		return err
	})
	g.Go(func() error {
		var err error
		spots, err = s.repo.SharedSpots(userIDs)
		return err
	})
	g.Go(func() error {
		var err error
		trips, err = s.repo.SharedTrips(userIDs)
		return err
	})
	g.Go(func() error {
		var err error
		achievements, err = s.repo.Achievements(userIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	subjectIDs := map[models.FeedKind][]string{
		models.FeedKindActivity:    make([]string, 0, len(activities)),
		models.FeedKindLocation:    make([]string, 0, len(spots)),
		models.FeedKindTrip:        make([]string, 0, len(trips)),
		models.FeedKindAchievement: make([]string, 0, len(achievements)),
	}
	for i := range activities {
		subjectIDs[models.FeedKindActivity] = append(subjectIDs[models.FeedKindActivity], activities[i].ID)
	}
	for i := range spots {
		subjectIDs[models.FeedKindLocation] = append(subjectIDs[models.FeedKindLocation], spots[i].ID)
	}
	for i := range trips {
		subjectIDs[models.FeedKindTrip] = append(subjectIDs[models.FeedKindTrip], trips[i].ID)
	}
	for i := range achievements {
		subjectIDs[models.FeedKindAchievement] = append(subjectIDs[models.FeedKindAchievement], achievements[i].ID)
	}

	likesBySubject := make(map[models.FeedRef][]string)
	commentsBySubject := make(map[models.FeedRef][]models.Comment)
	var mu sync.Mutex

	var g2 errgroup.Group
	for kind, ids := range subjectIDs {
		kind, ids := kind, ids
		g2.Go(func() error {
			likes, err := s.repo.LikesFor(kind, ids)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, like := range likes {
				ref := models.FeedRef{Kind: kind, ID: like.SubjectID}
				likesBySubject[ref] = append(likesBySubject[ref], like.UserID)
			}
			mu.Unlock()
			return nil
		})
		g2.Go(func() error {
			comments, err := s.repo.CommentsFor(kind, ids)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, comment := range comments {
				ref := models.FeedRef{Kind: kind, ID: comment.SubjectID}
				commentsBySubject[ref] = append(commentsBySubject[ref], comment)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	posts := make([]models.FeedPost, 0, len(activities)+len(spots)+len(trips)+len(achievements))

	for i := range activities {
		a := activities[i]
		ref := models.FeedRef{Kind: models.FeedKindActivity, ID: a.ID}
		posts = append(posts, models.FeedPost{
			Ref:         ref,
			Sharer:      a.User.Summary(),
			Timestamp:   a.StartTime,
			Activity:    &a,
			LikeUserIDs: likeIDs(likesBySubject, ref),
			Comments:    BuildCommentTree(commentsBySubject[ref]),
		})
	}
	for i := range spots {
		sp := spots[i]
		ref := models.FeedRef{Kind: models.FeedKindLocation, ID: sp.ID}
		posts = append(posts, models.FeedPost{
			Ref:         ref,
			Sharer:      sp.User.Summary(),
			Timestamp:   sp.CreatedAt,
			Spot:        &sp,
			LikeUserIDs: likeIDs(likesBySubject, ref),
			Comments:    BuildCommentTree(commentsBySubject[ref]),
		})
	}
	for i := range trips {
		t := trips[i]
		ref := models.FeedRef{Kind: models.FeedKindTrip, ID: t.ID}
		posts = append(posts, models.FeedPost{
			Ref:         ref,
			Sharer:      t.User.Summary(),
			Timestamp:   t.CreatedAt,
			Trip:        &t,
			LikeUserIDs: likeIDs(likesBySubject, ref),
			Comments:    BuildCommentTree(commentsBySubject[ref]),
		})
	}
	for i := range achievements {
		ach := achievements[i]
		ref := models.FeedRef{Kind: models.FeedKindAchievement, ID: ach.ID}
		posts = append(posts, models.FeedPost{
			Ref:         ref,
			Sharer:      ach.User.Summary(),
			Timestamp:   ach.EarnedAt,
			Achievement: &ach,
			LikeUserIDs: likeIDs(likesBySubject, ref),
			Comments:    BuildCommentTree(commentsBySubject[ref]),
		})
	}

	return posts, nil
}

func likeIDs(m map[models.FeedRef][]string, ref models.FeedRef) []string {
	if ids, ok := m[ref]; ok {
		return ids
	}
	return []string{}
}

// MergePosts sorts posts newest-first and caps the window. limit <= 0 means
// no cap. Ties break on ref id so the order is stable across reloads.
func MergePosts(posts []models.FeedPost, limit int) []models.FeedPost {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Timestamp.Equal(posts[j].Timestamp) {
			return posts[i].Ref.ID < posts[j].Ref.ID
		}
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})

	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

// BuildCommentTree groups raw comment rows into top-level comments with one
// level of replies. A reply whose reply_to does not match a top-level
// comment of the same subject is dropped rather than promoted or rejected.
func BuildCommentTree(comments []models.Comment) []models.FeedComment {
	tree := make([]models.FeedComment, 0, len(comments))
	index := make(map[string]int)

	for _, c := range comments {
		if c.ReplyTo != nil {
			continue
		}
		index[c.ID] = len(tree)
		tree = append(tree, models.FeedComment{
			ID:        c.ID,
			User:      c.User.Summary(),
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		})
	}

	for _, c := range comments {
		if c.ReplyTo == nil {
			continue
		}
		pos, ok := index[*c.ReplyTo]
		if !ok {
			// Orphan reply: parent deleted or never top-level. Skip it.
			continue
		}
		tree[pos].Replies = append(tree[pos].Replies, models.FeedComment{
			ID:        c.ID,
			User:      c.User.Summary(),
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		})
	}

	return tree
}
