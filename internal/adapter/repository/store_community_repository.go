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

type storeCommunityRepository struct {
	driver store.Driver
}

func NewStoreCommunityRepository(driver store.Driver) repository.CommunityRepository {
	return &storeCommunityRepository{driver: driver}
}

func (r *storeCommunityRepository) List(ctx context.Context) resource.Resource[[]entity.Community] {
	communities, err := store.List[entity.Community](ctx, r.driver, entity.CollectionCommunities)
	if err != nil {
		return resource.FailureFromErr[[]entity.Community](err)
	}
	sort.Slice(communities, func(i, j int) bool {
		return communities[i].CreatedAt.After(communities[j].CreatedAt)
	})
	return resource.Success(communities)
}

func (r *storeCommunityRepository) Get(ctx context.Context, id string) resource.Resource[*entity.Community] {
	community, err := store.Get[entity.Community](ctx, r.driver, entity.CollectionCommunities, id)
	if err != nil {
		return resource.FailureFromErr[*entity.Community](err)
	}
	if community == nil {
		return resource.FailureFromErr[*entity.Community](errors.NotFound("Community", nil))
	}
	return resource.Success(community)
}

func (r *storeCommunityRepository) Create(ctx context.Context, community *entity.Community) resource.Resource[*entity.Community] {
	now := time.Now()
	community.CreatedAt = now
	community.UpdatedAt = now
	if community.Members == nil {
		community.Members = []string{}
	}
	// The creator is always a member.
	if community.CreatorID != "" && !community.HasMember(community.CreatorID) {
		community.Members = append(community.Members, community.CreatorID)
	}
	community.MemberCount = len(community.Members)

	if _, err := store.Create(ctx, r.driver, entity.CollectionCommunities, community); err != nil {
		return resource.FailureFromErr[*entity.Community](err)
	}
	return resource.Success(community)
}

func (r *storeCommunityRepository) Observe(ctx context.Context) (*store.Subscription[entity.Community], error) {
	return store.ObserveCollection[entity.Community](ctx, r.driver, entity.CollectionCommunities)
}

func (r *storeCommunityRepository) Join(ctx context.Context, communityID, userID string) resource.Resource[*entity.Community] {
	var community *entity.Community
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		var err error
		community, err = store.TxGet[entity.Community](b, entity.CollectionCommunities, communityID)
		if err != nil {
			return err
		}
		if community == nil {
			return errors.NotFound("Community", nil)
		}
		if community.HasMember(userID) {
			// Already a member: no mutation.
			return nil
		}

		user, err := store.TxGet[entity.User](b, entity.CollectionUsers, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.NotFound("User", nil)
		}

		members := append(append([]string{}, community.Members...), userID)
		joined := user.JoinedCommunities
		if !contains(joined, communityID) {
			joined = append(append([]string{}, joined...), communityID)
		}

		b.Update(entity.CollectionCommunities, communityID, map[string]interface{}{
			"members":     members,
			"memberCount": len(members),
			"updatedAt":   time.Now(),
		})
		b.Update(entity.CollectionUsers, userID, map[string]interface{}{
			"joinedCommunities": joined,
			"updatedAt":         time.Now(),
		})
		community.Members = members
		community.MemberCount = len(members)
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Community](batchErr("join community", err))
	}
	return resource.Success(community)
}

func (r *storeCommunityRepository) Leave(ctx context.Context, communityID, userID string) resource.Resource[*entity.Community] {
	var community *entity.Community
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		var err error
		community, err = store.TxGet[entity.Community](b, entity.CollectionCommunities, communityID)
		if err != nil {
			return err
		}
		if community == nil {
			return errors.NotFound("Community", nil)
		}
		if !community.HasMember(userID) {
			// Removing a non-member is a no-op.
			return nil
		}

		user, err := store.TxGet[entity.User](b, entity.CollectionUsers, userID)
		if err != nil {
			return err
		}

		members := remove(community.Members, userID)
		b.Update(entity.CollectionCommunities, communityID, map[string]interface{}{
			"members":     members,
			"memberCount": len(members),
			"updatedAt":   time.Now(),
		})
		if user != nil {
			b.Update(entity.CollectionUsers, userID, map[string]interface{}{
				"joinedCommunities": remove(user.JoinedCommunities, communityID),
				"updatedAt":         time.Now(),
			})
		}
		community.Members = members
		community.MemberCount = len(members)
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Community](batchErr("leave community", err))
	}
	return resource.Success(community)
}

func (r *storeCommunityRepository) CreatePost(ctx context.Context, communityID string, input repository.CreatePostInput) resource.Resource[*entity.Post] {
	community, err := store.Get[entity.Community](ctx, r.driver, entity.CollectionCommunities, communityID)
	if err != nil {
		return resource.FailureFromErr[*entity.Post](err)
	}
	if community == nil {
		return resource.FailureFromErr[*entity.Post](errors.NotFound("Community", nil))
	}

	author, err := store.Get[entity.User](ctx, r.driver, entity.CollectionUsers, input.AuthorID)
	if err != nil {
		return resource.FailureFromErr[*entity.Post](err)
	}
	if author == nil {
		return resource.FailureFromErr[*entity.Post](errors.NotFound("User", nil))
	}

	// Author name and photo are written into the post so feeds never
	// join against the user collection on read.
	post := &entity.Post{
		CommunityID:    communityID,
		AuthorID:       author.ID,
		AuthorName:     author.Username,
		AuthorPhotoURL: author.PhotoURL,
		Content:        input.Content,
		ImageURL:       input.ImageURL,
		Likes:          0,
		LikedBy:        []string{},
		CommentCount:   0,
		CreatedAt:      time.Now(),
	}

	if _, err := store.Create(ctx, r.driver, entity.PostsCollection(communityID), post); err != nil {
		return resource.FailureFromErr[*entity.Post](err)
	}
	return resource.Success(post)
}

func (r *storeCommunityRepository) ListPosts(ctx context.Context, communityID string) resource.Resource[[]entity.Post] {
	posts, err := store.List[entity.Post](ctx, r.driver, entity.PostsCollection(communityID))
	if err != nil {
		return resource.FailureFromErr[[]entity.Post](err)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return resource.Success(posts)
}

func (r *storeCommunityRepository) GetPost(ctx context.Context, communityID, postID string) resource.Resource[*entity.Post] {
	post, err := store.Get[entity.Post](ctx, r.driver, entity.PostsCollection(communityID), postID)
	if err != nil {
		return resource.FailureFromErr[*entity.Post](err)
	}
	if post == nil {
		return resource.FailureFromErr[*entity.Post](errors.NotFound("Post", nil))
	}
	return resource.Success(post)
}

func (r *storeCommunityRepository) ObservePosts(ctx context.Context, communityID string) (*store.Subscription[entity.Post], error) {
	return store.ObserveCollection[entity.Post](ctx, r.driver, entity.PostsCollection(communityID))
}

func (r *storeCommunityRepository) ToggleLike(ctx context.Context, communityID, postID, userID string) resource.Resource[*entity.Post] {
	collection := entity.PostsCollection(communityID)
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		post, err := store.TxGet[entity.Post](b, collection, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.NotFound("Post", nil)
		}

		var likedBy []string
		if post.LikedByUser(userID) {
			likedBy = remove(post.LikedBy, userID)
		} else {
			likedBy = append(append([]string{}, post.LikedBy...), userID)
		}
		// Re-derive the count from the list; it is never trusted on its
		// own and never goes below zero.
		likes := len(likedBy)
		if likes < 0 {
			likes = 0
		}

		b.Update(collection, postID, map[string]interface{}{
			"likedBy": likedBy,
			"likes":   likes,
		})
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Post](batchErr("toggle like", err))
	}

	// Read back instead of trusting the local delta: consistency over
	// latency.
	return r.GetPost(ctx, communityID, postID)
}

func (r *storeCommunityRepository) AddComment(ctx context.Context, communityID, postID string, comment *entity.Comment) resource.Resource[*entity.Comment] {
	collection := entity.PostsCollection(communityID)
	comment.PostID = postID
	comment.CreatedAt = time.Now()

	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		post, err := store.TxGet[entity.Post](b, collection, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.NotFound("Post", nil)
		}

		// The stored commentCount is never trusted: it is re-derived
		// from the comment list inside the same commit, so a drifted
		// aggregate heals on the next write.
		comments, err := store.TxList[entity.Comment](b, entity.CommentsCollection(communityID, postID))
		if err != nil {
			return err
		}

		if err := b.SetRecord(entity.CommentsCollection(communityID, postID), newDocumentID(), comment); err != nil {
			return err
		}
		b.Update(collection, postID, map[string]interface{}{
			"commentCount": len(comments) + 1,
		})
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*entity.Comment](batchErr("add comment", err))
	}
	return resource.Success(comment)
}

func (r *storeCommunityRepository) ListComments(ctx context.Context, communityID, postID string) resource.Resource[[]entity.Comment] {
	comments, err := store.List[entity.Comment](ctx, r.driver, entity.CommentsCollection(communityID, postID))
	if err != nil {
		return resource.FailureFromErr[[]entity.Comment](err)
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return resource.Success(comments)
}
