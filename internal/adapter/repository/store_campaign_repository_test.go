package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparin/internal/domain/entity"
	"sparin/internal/store/memstore"
)

func newCampaign(t *testing.T, s *memstore.Store) *entity.Campaign {
	t.Helper()
	repo := NewStoreCampaignRepository(s)
	res := repo.Create(context.Background(), &entity.Campaign{
		Title:     "City futsal cup",
		Sport:     "futsal",
		CreatorID: "alice",
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(72 * time.Hour),
	})
	require.True(t, res.IsSuccess(), res.Message())
	return res.MustData()
}

func TestCampaignCreateDefaultsStatusAndCount(t *testing.T) {
	s := memstore.New()

	campaign := newCampaign(t, s)

	assert.Equal(t, "upcoming", campaign.Status)
	assert.Empty(t, campaign.Participants)
	assert.Zero(t, campaign.ParticipantCount)
}

func TestCampaignCreateRejectsInvertedDates(t *testing.T) {
	s := memstore.New()
	repo := NewStoreCampaignRepository(s)

	res := repo.Create(context.Background(), &entity.Campaign{
		Title:     "bad",
		StartDate: time.Now().Add(72 * time.Hour),
		EndDate:   time.Now().Add(24 * time.Hour),
	})
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("BAD_REQUEST"))
}

func TestCampaignJoinLeaveKeepsCountConsistent(t *testing.T) {
	s := memstore.New()
	repo := NewStoreCampaignRepository(s)
	ctx := context.Background()

	campaign := newCampaign(t, s)

	joined := repo.Join(ctx, campaign.ID, "bob")
	require.True(t, joined.IsSuccess())
	assert.Equal(t, 1, joined.MustData().ParticipantCount)
	assert.Equal(t, len(joined.MustData().Participants), joined.MustData().ParticipantCount)

	// Joining again is a no-op.
	again := repo.Join(ctx, campaign.ID, "bob")
	require.True(t, again.IsSuccess())
	assert.Equal(t, 1, again.MustData().ParticipantCount)

	left := repo.Leave(ctx, campaign.ID, "bob")
	require.True(t, left.IsSuccess())
	assert.Zero(t, left.MustData().ParticipantCount)

	// Leaving as a non-participant is a no-op.
	leftAgain := repo.Leave(ctx, campaign.ID, "bob")
	require.True(t, leftAgain.IsSuccess())
	assert.Zero(t, leftAgain.MustData().ParticipantCount)
}

func TestCampaignJoinClosedConflicts(t *testing.T) {
	s := memstore.New()
	repo := NewStoreCampaignRepository(s)
	ctx := context.Background()

	campaign := newCampaign(t, s)
	require.NoError(t, s.Update(ctx, entity.CollectionCampaigns, campaign.ID, map[string]interface{}{
		"status": "closed",
	}))

	res := repo.Join(ctx, campaign.ID, "bob")
	assert.True(t, res.IsError())
	assert.True(t, res.ErrCode("CONFLICT"))
}
