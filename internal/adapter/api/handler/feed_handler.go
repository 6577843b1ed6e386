package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"sparin/internal/domain/repository"
)

const defaultFeedLimit = 50

type FeedHandler struct {
	feedRepo repository.FeedRepository
}

func NewFeedHandler(feedRepo repository.FeedRepository) *FeedHandler {
	return &FeedHandler{
		feedRepo: feedRepo,
	}
}

func (h *FeedHandler) HomeFeed(c echo.Context) error {
	limit := defaultFeedLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	return respond(c, h.feedRepo.HomeFeed(c.Request().Context(), currentUID(c), limit))
}

func (h *FeedHandler) Insights(c echo.Context) error {
	return respond(c, h.feedRepo.InsightsForUser(c.Request().Context(), currentUID(c)))
}

// GenerateInsight produces a stub activity summary on demand. The real
// generator runs offline; this keeps the feed demoable without it.
func (h *FeedHandler) GenerateInsight(c echo.Context) error {
	return respondCreated(c, h.feedRepo.GenerateEngagementInsight(c.Request().Context(), currentUID(c)))
}
