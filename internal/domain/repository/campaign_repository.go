package repository

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/store"
	"sparin/pkg/resource"
)

type CampaignRepository interface {
	List(ctx context.Context) resource.Resource[[]entity.Campaign]
	Get(ctx context.Context, id string) resource.Resource[*entity.Campaign]
	Create(ctx context.Context, campaign *entity.Campaign) resource.Resource[*entity.Campaign]
	Observe(ctx context.Context) (*store.Subscription[entity.Campaign], error)

	// Join and Leave keep participantCount equal to len(participants)
	// and are commutative-idempotent like every membership operation.
	Join(ctx context.Context, campaignID, userID string) resource.Resource[*entity.Campaign]
	Leave(ctx context.Context, campaignID, userID string) resource.Resource[*entity.Campaign]
}
