package controller

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/pkg/resource"
)

// CommunityListController owns the community directory screen.
type CommunityListController struct {
	*Controller[[]entity.Community]
}

func NewCommunityListController(communities repository.CommunityRepository) *CommunityListController {
	return &CommunityListController{
		Controller: New(func(ctx context.Context) resource.Resource[[]entity.Community] {
			return communities.List(ctx)
		}),
	}
}

// CommunityDetail is the UI-ready shape of one community screen.
type CommunityDetail struct {
	Community *entity.Community `json:"community"`
	Posts     []entity.Post     `json:"posts"`
}

// CommunityDetailController owns one community's detail screen: header,
// posts, and the membership/like actions. Every mutation is followed by a
// re-read instead of an optimistic local patch.
type CommunityDetailController struct {
	*Controller[CommunityDetail]
	communities repository.CommunityRepository
	communityID string
}

func NewCommunityDetailController(communities repository.CommunityRepository, communityID string) *CommunityDetailController {
	c := &CommunityDetailController{
		communities: communities,
		communityID: communityID,
	}
	c.Controller = New(c.load)
	return c
}

func (c *CommunityDetailController) load(ctx context.Context) resource.Resource[CommunityDetail] {
	communityRes := c.communities.Get(ctx, c.communityID)
	community, ok := communityRes.Data()
	if !ok {
		return resource.Failure[CommunityDetail](communityRes.Message(), communityRes.Cause())
	}
	postsRes := c.communities.ListPosts(ctx, c.communityID)
	posts, ok := postsRes.Data()
	if !ok {
		return resource.Failure[CommunityDetail](postsRes.Message(), postsRes.Cause())
	}
	return resource.Success(CommunityDetail{Community: community, Posts: posts})
}

func (c *CommunityDetailController) Join(ctx context.Context, userID string) resource.Resource[*entity.Community] {
	res := c.communities.Join(ctx, c.communityID, userID)
	if res.IsSuccess() {
		c.Refresh(ctx)
	}
	return res
}

func (c *CommunityDetailController) Leave(ctx context.Context, userID string) resource.Resource[*entity.Community] {
	res := c.communities.Leave(ctx, c.communityID, userID)
	if res.IsSuccess() {
		c.Refresh(ctx)
	}
	return res
}

func (c *CommunityDetailController) ToggleLike(ctx context.Context, postID, userID string) resource.Resource[*entity.Post] {
	res := c.communities.ToggleLike(ctx, c.communityID, postID, userID)
	if res.IsSuccess() {
		c.Refresh(ctx)
	}
	return res
}

func (c *CommunityDetailController) CreatePost(ctx context.Context, input repository.CreatePostInput) resource.Resource[*entity.Post] {
	res := c.communities.CreatePost(ctx, c.communityID, input)
	if res.IsSuccess() {
		c.Refresh(ctx)
	}
	return res
}
