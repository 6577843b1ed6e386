package repository

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/pkg/resource"
)

type SwipeResult struct {
	Swipe *entity.Swipe `json:"swipe"`
	// Match is non-nil when this swipe completed a mutual like.
	Match *entity.Match `json:"match,omitempty"`
}

type MatchRepository interface {
	// RecordSwipe stores the decision under the swiping user. A like
	// that finds a reciprocal like creates the match document in the
	// same atomic batch. Re-swiping the same target is a no-op Success.
	RecordSwipe(ctx context.Context, fromUserID, toUserID, action string) resource.Resource[*SwipeResult]

	ListForUser(ctx context.Context, userID string) resource.Resource[[]entity.Match]

	GetSwipe(ctx context.Context, fromUserID, toUserID string) resource.Resource[*entity.Swipe]
}
