package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/store"
	"sparin/pkg/errors"
	"sparin/pkg/resource"
)

const defaultFeedLimit = 50

type storeFeedRepository struct {
	driver store.Driver
}

func NewStoreFeedRepository(driver store.Driver) repository.FeedRepository {
	return &storeFeedRepository{driver: driver}
}

func (r *storeFeedRepository) HomeFeed(ctx context.Context, userID string, limit int) resource.Resource[[]repository.FeedItem] {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	user, err := store.Get[entity.User](ctx, r.driver, entity.CollectionUsers, userID)
	if err != nil {
		return resource.FailureFromErr[[]repository.FeedItem](err)
	}
	if user == nil {
		return resource.FailureFromErr[[]repository.FeedItem](errors.NotFound("User", nil))
	}

	items := make([]repository.FeedItem, 0, limit)
	for _, communityID := range user.JoinedCommunities {
		community, err := store.Get[entity.Community](ctx, r.driver, entity.CollectionCommunities, communityID)
		if err != nil {
			return resource.FailureFromErr[[]repository.FeedItem](err)
		}
		if community == nil {
			// Stale membership reference; skip rather than fail the feed.
			continue
		}
		posts, err := store.List[entity.Post](ctx, r.driver, entity.PostsCollection(communityID))
		if err != nil {
			return resource.FailureFromErr[[]repository.FeedItem](err)
		}
		for _, post := range posts {
			items = append(items, repository.FeedItem{
				Post:          post,
				CommunityName: community.Name,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Post.CreatedAt.After(items[j].Post.CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return resource.Success(items)
}

func (r *storeFeedRepository) InsightsForUser(ctx context.Context, userID string) resource.Resource[[]entity.AIInsight] {
	insights, err := store.Query[entity.AIInsight](ctx, r.driver, entity.CollectionAIInsights, "userId", userID)
	if err != nil {
		return resource.FailureFromErr[[]entity.AIInsight](err)
	}
	sort.Slice(insights, func(i, j int) bool {
		return insights[i].GeneratedAt.After(insights[j].GeneratedAt)
	})
	return resource.Success(insights)
}

func (r *storeFeedRepository) GenerateEngagementInsight(ctx context.Context, userID string) resource.Resource[*entity.AIInsight] {
	user, err := store.Get[entity.User](ctx, r.driver, entity.CollectionUsers, userID)
	if err != nil {
		return resource.FailureFromErr[*entity.AIInsight](err)
	}
	if user == nil {
		return resource.FailureFromErr[*entity.AIInsight](errors.NotFound("User", nil))
	}

	campaigns, err := store.List[entity.Campaign](ctx, r.driver, entity.CollectionCampaigns)
	if err != nil {
		return resource.FailureFromErr[*entity.AIInsight](err)
	}
	joined := 0
	for _, campaign := range campaigns {
		if contains(campaign.Participants, userID) {
			joined++
		}
	}

	insight := &entity.AIInsight{
		UserID: userID,
		Type:   "activity_summary",
		Title:  "Your week in sport",
		Body: fmt.Sprintf("You are in %d communities, %d rooms and %d campaigns. Keep it up!",
			len(user.JoinedCommunities), len(user.JoinedRooms), joined),
		Source:      "stub",
		GeneratedAt: time.Now(),
	}
	if _, err := store.Create(ctx, r.driver, entity.CollectionAIInsights, insight); err != nil {
		return resource.FailureFromErr[*entity.AIInsight](err)
	}
	return resource.Success(insight)
}
