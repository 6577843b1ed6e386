package controller

import (
	"context"
	"sync"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/pkg/resource"
)

// FeedController owns the home screen: the merged community feed and the
// generated insights, each its own Resource-shaped concern.
type FeedController struct {
	feed   repository.FeedRepository
	userID string

	feedState    *State[[]repository.FeedItem]
	insightState *State[[]entity.AIInsight]

	startOnce sync.Once
}

func NewFeedController(feed repository.FeedRepository, userID string) *FeedController {
	return &FeedController{
		feed:         feed,
		userID:       userID,
		feedState:    NewState[[]repository.FeedItem](),
		insightState: NewState[[]entity.AIInsight](),
	}
}

func (c *FeedController) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.loadFeed(ctx)
		c.loadInsights(ctx)
	})
}

func (c *FeedController) Retry(ctx context.Context) {
	c.loadFeed(ctx)
	c.loadInsights(ctx)
}

func (c *FeedController) Reset() {
	c.feedState.Publish(resource.Idle[[]repository.FeedItem]())
	c.insightState.Publish(resource.Idle[[]entity.AIInsight]())
}

func (c *FeedController) loadFeed(ctx context.Context) {
	c.feedState.Publish(resource.Loading[[]repository.FeedItem]())
	go func() {
		c.feedState.Publish(c.feed.HomeFeed(ctx, c.userID, 0))
	}()
}

func (c *FeedController) loadInsights(ctx context.Context) {
	c.insightState.Publish(resource.Loading[[]entity.AIInsight]())
	go func() {
		c.insightState.Publish(c.feed.InsightsForUser(ctx, c.userID))
	}()
}

func (c *FeedController) FeedState() resource.Resource[[]repository.FeedItem] {
	return c.feedState.Get()
}

func (c *FeedController) InsightState() resource.Resource[[]entity.AIInsight] {
	return c.insightState.Get()
}

func (c *FeedController) WatchFeed(ctx context.Context) <-chan resource.Resource[[]repository.FeedItem] {
	return c.feedState.Watch(ctx)
}

func (c *FeedController) WatchInsights(ctx context.Context) <-chan resource.Resource[[]entity.AIInsight] {
	return c.insightState.Watch(ctx)
}
