package repository

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/store"
	"sparin/pkg/resource"
)

type CreatePostInput struct {
	AuthorID string
	Content  string
	ImageURL string
}

type CommunityRepository interface {
	List(ctx context.Context) resource.Resource[[]entity.Community]
	Get(ctx context.Context, id string) resource.Resource[*entity.Community]
	Create(ctx context.Context, community *entity.Community) resource.Resource[*entity.Community]
	Observe(ctx context.Context) (*store.Subscription[entity.Community], error)

	// Join appends userID to members, re-derives memberCount and mirrors
	// the membership onto the user document, all in one atomic batch.
	// Joining a community one is already a member of is a no-op Success.
	Join(ctx context.Context, communityID, userID string) resource.Resource[*entity.Community]

	// Leave is symmetric to Join; leaving as a non-member is a no-op.
	Leave(ctx context.Context, communityID, userID string) resource.Resource[*entity.Community]

	// CreatePost assigns a generated id and server timestamp, zeroes the
	// aggregates and denormalizes the author's name and photo.
	CreatePost(ctx context.Context, communityID string, input CreatePostInput) resource.Resource[*entity.Post]

	ListPosts(ctx context.Context, communityID string) resource.Resource[[]entity.Post]
	GetPost(ctx context.Context, communityID, postID string) resource.Resource[*entity.Post]
	ObservePosts(ctx context.Context, communityID string) (*store.Subscription[entity.Post], error)

	// ToggleLike flips userID's presence in likedBy and re-derives the
	// likes count, which never goes below zero. Callers re-read state
	// afterwards instead of trusting a local optimistic value.
	ToggleLike(ctx context.Context, communityID, postID, userID string) resource.Resource[*entity.Post]

	// AddComment writes the comment and bumps the post's commentCount in
	// one atomic batch.
	AddComment(ctx context.Context, communityID, postID string, comment *entity.Comment) resource.Resource[*entity.Comment]

	ListComments(ctx context.Context, communityID, postID string) resource.Resource[[]entity.Comment]
}
