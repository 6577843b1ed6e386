package repository

import (
	"context"
	"sort"
	"time"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/store"
	"sparin/pkg/errors"
	"sparin/pkg/resource"
)

type storeCampaignRepository struct {
	driver store.Driver
}

func NewStoreCampaignRepository(driver store.Driver) repository.CampaignRepository {
	return &storeCampaignRepository{driver: driver}
}

func (r *storeCampaignRepository) List(ctx context.Context) resource.Resource[[]entity.Campaign] {
	campaigns, err := store.List[entity.Campaign](ctx, r.driver, entity.CollectionCampaigns)
	if err != nil {
		return resource.FailureFromErr[[]entity.Campaign](err)
	}
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].StartDate.Before(campaigns[j].StartDate)
	})
	return resource.Success(campaigns)
}

func (r *storeCampaignRepository) Get(ctx context.Context, id string) resource.Resource[*entity.Campaign] {
	campaign, err := store.Get[entity.Campaign](ctx, r.driver, entity.CollectionCampaigns, id)
	if err != nil {
		return resource.FailureFromErr[*entity.Campaign](err)
	}
	if campaign == nil {
		return resource.FailureFromErr[*entity.Campaign](errors.NotFound("Campaign", nil))
	}
	return resource.Success(campaign)
}

func (r *storeCampaignRepository) Create(ctx context.Context, campaign *entity.Campaign) resource.Resource[*entity.Campaign] {
	if campaign.EndDate.Before(campaign.StartDate) {
		return resource.FailureFromErr[*entity.Campaign](errors.BadRequest("Campaign ends before it starts", nil))
	}

	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	if campaign.Status == "" {
		campaign.Status = "upcoming"
	}
	if campaign.Participants == nil {
		campaign.Participants = []string{}
	}
	campaign.ParticipantCount = len(campaign.Participants)

	if _, err := store.Create(ctx, r.driver, entity.CollectionCampaigns, campaign); err != nil {
		return resource.FailureFromErr[*entity.Campaign](err)
	}
	return resource.Success(campaign)
}

func (r *storeCampaignRepository) Observe(ctx context.Context) (*store.Subscription[entity.Campaign], error) {
	return store.ObserveCollection[entity.Campaign](ctx, r.driver, entity.CollectionCampaigns)
}

func (r *storeCampaignRepository) Join(ctx context.Context, campaignID, userID string) resource.Resource[*entity.Campaign] {
	var campaign *entity.Campaign
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		var err error
		campaign, err = store.TxGet[entity.Campaign](b, entity.CollectionCampaigns, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return errors.NotFound("Campaign", nil)
		}
		if campaign.HasParticipant(userID) {
			return nil
		}
		if campaign.Status == "closed" {
			return errors.Conflict("Campaign is closed")
		}

		participants := append(append([]string{}, campaign.Participants...), userID)
		b.Update(entity.CollectionCampaigns, campaignID, map[string]interface{}{
			"participants":     participants,
			"participantCount": len(participants),
			"updatedAt":        time.Now(),
		})
		campaign.Participants = participants
		campaign.ParticipantCount = len(participants)
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Campaign](batchErr("join campaign", err))
	}
	return resource.Success(campaign)
}

func (r *storeCampaignRepository) Leave(ctx context.Context, campaignID, userID string) resource.Resource[*entity.Campaign] {
	var campaign *entity.Campaign
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		var err error
		campaign, err = store.TxGet[entity.Campaign](b, entity.CollectionCampaigns, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return errors.NotFound("Campaign", nil)
		}
		if !campaign.HasParticipant(userID) {
			return nil
		}

		participants := remove(campaign.Participants, userID)
		b.Update(entity.CollectionCampaigns, campaignID, map[string]interface{}{
			"participants":     participants,
			"participantCount": len(participants),
			"updatedAt":        time.Now(),
		})
		campaign.Participants = participants
		campaign.ParticipantCount = len(participants)
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Campaign](batchErr("leave campaign", err))
	}
	return resource.Success(campaign)
}
