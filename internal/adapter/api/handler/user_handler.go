package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/infrastructure/storage"
	"sparin/pkg/errors"
	"sparin/pkg/response"
)

const maxPhotoBytes = 5 << 20

// MediaUploader is the slice of the storage client the user handler
// needs. Nil when no bucket is configured.
type MediaUploader interface {
	UploadProfilePhoto(ctx context.Context, uid string, r io.Reader, contentType string) (string, error)
}

type UserHandler struct {
	userRepo repository.UserRepository
	media    MediaUploader
}

func NewUserHandler(userRepo repository.UserRepository, media MediaUploader) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		media:    media,
	}
}

// GetProfile returns the caller's own profile. 404 with code NOT_FOUND
// means the account exists but onboarding was never completed.
func (h *UserHandler) GetProfile(c echo.Context) error {
	return respond(c, h.userRepo.GetCurrentProfile(c.Request().Context()))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	return respond(c, h.userRepo.GetByID(c.Request().Context(), c.Param("id")))
}

type createProfileRequest struct {
	Username       string   `json:"username" validate:"required,min=3"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone" validate:"omitempty,e164"`
	Bio            string   `json:"bio"`
	PhotoURL       string   `json:"photoURL" validate:"omitempty,url"`
	City           string   `json:"city"`
	FavoriteSports []string `json:"favoriteSports"`
	SkillLevel     string   `json:"skillLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// CreateProfile completes onboarding by writing the profile document
// under the caller's auth uid.
func (h *UserHandler) CreateProfile(c echo.Context) error {
	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &entity.User{
		ID:             currentUID(c),
		Username:       req.Username,
		Email:          req.Email,
		Phone:          req.Phone,
		Bio:            req.Bio,
		PhotoURL:       req.PhotoURL,
		City:           req.City,
		FavoriteSports: req.FavoriteSports,
		SkillLevel:     req.SkillLevel,
		CreatedAt:      time.Now(),
	}

	return respondCreated(c, h.userRepo.CreateProfile(c.Request().Context(), user))
}

type updateProfileRequest struct {
	Username       string   `json:"username" validate:"omitempty,min=3"`
	Phone          string   `json:"phone" validate:"omitempty,e164"`
	Bio            string   `json:"bio"`
	PhotoURL       string   `json:"photoURL" validate:"omitempty,url"`
	City           string   `json:"city"`
	FavoriteSports []string `json:"favoriteSports"`
	SkillLevel     string   `json:"skillLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := repository.UpdateProfileInput{
		Username:       req.Username,
		Phone:          req.Phone,
		Bio:            req.Bio,
		PhotoURL:       req.PhotoURL,
		City:           req.City,
		FavoriteSports: req.FavoriteSports,
		SkillLevel:     req.SkillLevel,
	}

	return respond(c, h.userRepo.UpdateProfile(c.Request().Context(), currentUID(c), input))
}

// UploadPhoto accepts a multipart image, stores it in the media bucket,
// and points the profile's photoURL at the new object.
func (h *UserHandler) UploadPhoto(c echo.Context) error {
	if h.media == nil {
		return response.Error(c, errors.New("STORAGE_DISABLED", "Media uploads are not configured", http.StatusServiceUnavailable, nil))
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}
	if fileHeader.Size > maxPhotoBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo exceeds the 5MB limit")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !storage.SupportedImageType(contentType) {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported image type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	uid := currentUID(c)
	url, err := h.media.UploadProfilePhoto(c.Request().Context(), uid, src, contentType)
	if err != nil {
		return response.Error(c, errors.Internal("Photo upload failed", err))
	}

	return respond(c, h.userRepo.UpdateProfile(c.Request().Context(), uid, repository.UpdateProfileInput{PhotoURL: url}))
}
