package controller

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/pkg/resource"
)

// CampaignListController owns the campaign discovery screen.
type CampaignListController struct {
	*Controller[[]entity.Campaign]
	campaigns repository.CampaignRepository
}

func NewCampaignListController(campaigns repository.CampaignRepository) *CampaignListController {
	return &CampaignListController{
		Controller: New(func(ctx context.Context) resource.Resource[[]entity.Campaign] {
			return campaigns.List(ctx)
		}),
		campaigns: campaigns,
	}
}

func (c *CampaignListController) Join(ctx context.Context, campaignID, userID string) resource.Resource[*entity.Campaign] {
	res := c.campaigns.Join(ctx, campaignID, userID)
	if res.IsSuccess() {
		c.Refresh(ctx)
	}
	return res
}

func (c *CampaignListController) Leave(ctx context.Context, campaignID, userID string) resource.Resource[*entity.Campaign] {
	res := c.campaigns.Leave(ctx, campaignID, userID)
	if res.IsSuccess() {
		c.Refresh(ctx)
	}
	return res
}
