package controller

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/pkg/resource"
)

// ProfileController owns the current user's profile screen.
type ProfileController struct {
	*Controller[*entity.User]
	users repository.UserRepository
}

func NewProfileController(users repository.UserRepository) *ProfileController {
	return &ProfileController{
		Controller: New(func(ctx context.Context) resource.Resource[*entity.User] {
			return users.GetCurrentProfile(ctx)
		}),
		users: users,
	}
}

// NeedsOnboarding reports the authenticated-but-no-profile signal the
// first-run flow routes on.
func (c *ProfileController) NeedsOnboarding() bool {
	return c.State().ErrCode("NOT_FOUND")
}

// Save updates the profile and re-reads it into the screen state.
func (c *ProfileController) Save(ctx context.Context, userID string, input repository.UpdateProfileInput) resource.Resource[*entity.User] {
	res := c.users.UpdateProfile(ctx, userID, input)
	if res.IsSuccess() {
		c.Refresh(ctx)
	}
	return res
}
