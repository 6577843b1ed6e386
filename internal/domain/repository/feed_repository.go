package repository

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/pkg/resource"
)

// FeedItem is one entry of the home feed, already UI-shaped.
type FeedItem struct {
	Post          entity.Post `json:"post"`
	CommunityName string      `json:"community_name"`
}

type FeedRepository interface {
	// HomeFeed merges recent posts from every community the user joined,
	// newest first, capped to limit.
	HomeFeed(ctx context.Context, userID string, limit int) resource.Resource[[]FeedItem]

	// InsightsForUser lists the generated insights addressed to the user.
	InsightsForUser(ctx context.Context, userID string) resource.Resource[[]entity.AIInsight]

	// GenerateEngagementInsight writes a stub activity summary for the
	// user from their current memberships and returns it. Placeholder for
	// the offline insight generator.
	GenerateEngagementInsight(ctx context.Context, userID string) resource.Resource[*entity.AIInsight]
}
