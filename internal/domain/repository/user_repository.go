// Package repository declares the domain-facing contracts the view-state
// controllers and API handlers consume. Every operation returns a Resource
// envelope: Success with the fully materialized value, or Error with a
// human-readable message. Loading is the caller's concern.
package repository

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/store"
	"sparin/pkg/resource"
)

type UpdateProfileInput struct {
	Username       string
	Phone          string
	Bio            string
	PhotoURL       string
	City           string
	FavoriteSports []string
	SkillLevel     string
}

type UserRepository interface {
	// CreateProfile writes the user document keyed by the auth UID,
	// replacing any existing document at that id.
	CreateProfile(ctx context.Context, user *entity.User) resource.Resource[*entity.User]

	GetByID(ctx context.Context, id string) resource.Resource[*entity.User]

	// GetCurrentProfile resolves the authenticated identity and fetches
	// its profile document. Unauthenticated when no identity is present;
	// NotFound when authenticated but no profile exists yet, the signal
	// the onboarding flow routes on.
	GetCurrentProfile(ctx context.Context) resource.Resource[*entity.User]

	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) resource.Resource[*entity.User]

	DeleteProfile(ctx context.Context, userID string) resource.Resource[struct{}]

	ObserveProfile(ctx context.Context, userID string) (*store.DocSubscription[entity.User], error)
}
