package usecase

import (
	"context"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/pkg/errors"
	"sparin/pkg/logger"
	"sparin/pkg/resource"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// AuthResult carries the signed-in identity. User is nil and IsNewUser is
// true when the account has no profile document yet; the client routes
// such users into onboarding before anything else.
type AuthResult struct {
	UserID       string       `json:"userId"`
	User         *entity.User `json:"user,omitempty"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	IsNewUser    bool         `json:"isNewUser"`
}

type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates the auth account and signs it in. The profile document
// is deliberately not written here; onboarding owns that, so a fresh
// registration always comes back with IsNewUser set.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) resource.Resource[*AuthResult] {
	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.DisplayName)
	if err != nil {
		return resource.FailureFromErr[*AuthResult](errors.BadRequest("Could not create the account", err))
	}

	token, refreshToken, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return resource.FailureFromErr[*AuthResult](errors.Internal("Account created but sign-in failed", err))
	}

	return resource.Success(&AuthResult{
		UserID:       uid,
		Token:        token,
		RefreshToken: refreshToken,
		IsNewUser:    true,
	})
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) resource.Resource[*AuthResult] {
	token, refreshToken, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return resource.FailureFromErr[*AuthResult](errors.Unauthenticated("Invalid credentials", err))
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return resource.FailureFromErr[*AuthResult](errors.Internal("Could not verify the issued token", err))
	}

	result := &AuthResult{
		UserID:       uid,
		Token:        token,
		RefreshToken: refreshToken,
	}

	profile := uc.userRepo.GetByID(ctx, uid)
	switch {
	case profile.IsSuccess():
		result.User = profile.MustData()
	case profile.ErrCode("NOT_FOUND"):
		// Authenticated but never onboarded.
		result.IsNewUser = true
	default:
		return resource.Failure[*AuthResult](profile.Message(), profile.Cause())
	}

	return resource.Success(result)
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) resource.Resource[*TokenPair] {
	token, newRefresh, err := uc.firebaseAuth.RefreshIdToken(refreshToken)
	if err != nil {
		return resource.FailureFromErr[*TokenPair](errors.Unauthenticated("Invalid refresh token", err))
	}

	return resource.Success(&TokenPair{
		Token:        token,
		RefreshToken: newRefresh,
	})
}

// DeleteAccount removes the auth account and the profile document. The
// profile goes first so a failure there leaves the account signed-in and
// retryable.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, uid string) resource.Resource[struct{}] {
	if res := uc.userRepo.DeleteProfile(ctx, uid); res.IsError() {
		return res
	}

	if err := uc.firebaseAuth.DeleteUser(ctx, uid); err != nil {
		return resource.FailureFromErr[struct{}](errors.Internal("Profile removed but the auth account remains", err))
	}

	return resource.Success(struct{}{})
}
