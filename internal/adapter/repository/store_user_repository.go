package repository

import (
	"context"
	"time"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/session"
	"sparin/internal/store"
	"sparin/pkg/errors"
	"sparin/pkg/resource"
)

type storeUserRepository struct {
	driver  store.Driver
	session session.Resolver
}

func NewStoreUserRepository(driver store.Driver, resolver session.Resolver) repository.UserRepository {
	return &storeUserRepository{
		driver:  driver,
		session: resolver,
	}
}

func (r *storeUserRepository) CreateProfile(ctx context.Context, user *entity.User) resource.Resource[*entity.User] {
	if user.ID == "" {
		return resource.FailureFromErr[*entity.User](errors.BadRequest("User id is required", nil))
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteSports == nil {
		user.FavoriteSports = []string{}
	}
	if user.JoinedCommunities == nil {
		user.JoinedCommunities = []string{}
	}
	if user.JoinedRooms == nil {
		user.JoinedRooms = []string{}
	}

	if err := store.CreateWithID(ctx, r.driver, entity.CollectionUsers, user.ID, user); err != nil {
		return resource.FailureFromErr[*entity.User](err)
	}
	return resource.Success(user)
}

func (r *storeUserRepository) GetByID(ctx context.Context, id string) resource.Resource[*entity.User] {
	user, err := store.Get[entity.User](ctx, r.driver, entity.CollectionUsers, id)
	if err != nil {
		return resource.FailureFromErr[*entity.User](err)
	}
	if user == nil {
		return resource.FailureFromErr[*entity.User](errors.NotFound("User", nil))
	}
	return resource.Success(user)
}

func (r *storeUserRepository) GetCurrentProfile(ctx context.Context) resource.Resource[*entity.User] {
	uid, ok := r.session.CurrentUserID(ctx)
	if !ok {
		return resource.FailureFromErr[*entity.User](errors.Unauthenticated("Sign in required", nil))
	}

	user, err := store.Get[entity.User](ctx, r.driver, entity.CollectionUsers, uid)
	if err != nil {
		return resource.FailureFromErr[*entity.User](err)
	}
	if user == nil {
		// Authenticated but no profile yet: the first-run signal.
		return resource.FailureFromErr[*entity.User](errors.NotFound("Profile", nil))
	}
	return resource.Success(user)
}

func (r *storeUserRepository) UpdateProfile(ctx context.Context, userID string, input repository.UpdateProfileInput) resource.Resource[*entity.User] {
	fields := map[string]interface{}{
		"updatedAt": time.Now(),
	}
	if input.Username != "" {
		fields["username"] = input.Username
	}
	if input.Phone != "" {
		fields["phone"] = input.Phone
	}
	if input.Bio != "" {
		fields["bio"] = input.Bio
	}
	if input.PhotoURL != "" {
		fields["photoURL"] = input.PhotoURL
	}
	if input.City != "" {
		fields["city"] = input.City
	}
	if input.FavoriteSports != nil {
		fields["favoriteSports"] = input.FavoriteSports
	}
	if input.SkillLevel != "" {
		fields["skillLevel"] = input.SkillLevel
	}

	if err := store.Update(ctx, r.driver, entity.CollectionUsers, userID, fields); err != nil {
		return resource.FailureFromErr[*entity.User](err)
	}
	return r.GetByID(ctx, userID)
}

func (r *storeUserRepository) DeleteProfile(ctx context.Context, userID string) resource.Resource[struct{}] {
	if err := store.Delete(ctx, r.driver, entity.CollectionUsers, userID); err != nil {
		return resource.FailureFromErr[struct{}](err)
	}
	return resource.Success(struct{}{})
}

func (r *storeUserRepository) ObserveProfile(ctx context.Context, userID string) (*store.DocSubscription[entity.User], error) {
	return store.ObserveDocument[entity.User](ctx, r.driver, entity.CollectionUsers, userID)
}
