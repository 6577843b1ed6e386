package controller

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/infrastructure/prefs"
	"sparin/pkg/logger"
	"sparin/pkg/resource"
)

// OnboardingStatus is the routing decision for app start: straight to the
// home screen when a profile exists, into the first-run flow otherwise.
type OnboardingStatus struct {
	Completed bool         `json:"completed"`
	User      *entity.User `json:"user,omitempty"`
}

// OnboardingController decides the first-run route and finalizes
// onboarding by creating the profile document and flipping the local
// preference flags.
type OnboardingController struct {
	*Controller[OnboardingStatus]
	users repository.UserRepository
	prefs *prefs.Store
}

func NewOnboardingController(users repository.UserRepository, prefStore *prefs.Store) *OnboardingController {
	c := &OnboardingController{
		users: users,
		prefs: prefStore,
	}
	c.Controller = New(c.load)
	return c
}

func (c *OnboardingController) load(ctx context.Context) resource.Resource[OnboardingStatus] {
	res := c.users.GetCurrentProfile(ctx)
	if user, ok := res.Data(); ok {
		return resource.Success(OnboardingStatus{Completed: true, User: user})
	}
	if res.ErrCode("NOT_FOUND") {
		// Authenticated but no profile document yet.
		return resource.Success(OnboardingStatus{Completed: false})
	}
	return resource.Failure[OnboardingStatus](res.Message(), res.Cause())
}

// Complete writes the profile and records completion locally.
func (c *OnboardingController) Complete(ctx context.Context, user *entity.User) resource.Resource[*entity.User] {
	res := c.users.CreateProfile(ctx, user)
	created, ok := res.Data()
	if !ok {
		return res
	}

	if err := c.prefs.SetOnboardingCompleted(created.ID, true); err != nil {
		logger.Warn("Failed to persist onboarding flag: %v", err)
	}
	if err := c.prefs.SetLastKnownUserID(created.ID); err != nil {
		logger.Warn("Failed to persist last user id: %v", err)
	}

	c.Refresh(ctx)
	return res
}
