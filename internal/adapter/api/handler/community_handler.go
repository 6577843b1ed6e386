package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
)

type CommunityHandler struct {
	communityRepo repository.CommunityRepository
}

func NewCommunityHandler(communityRepo repository.CommunityRepository) *CommunityHandler {
	return &CommunityHandler{
		communityRepo: communityRepo,
	}
}

func (h *CommunityHandler) List(c echo.Context) error {
	return respond(c, h.communityRepo.List(c.Request().Context()))
}

func (h *CommunityHandler) Get(c echo.Context) error {
	return respond(c, h.communityRepo.Get(c.Request().Context(), c.Param("id")))
}

type createCommunityRequest struct {
	Name        string `json:"name" validate:"required,min=3"`
	Sport       string `json:"sport" validate:"required"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoURL" validate:"omitempty,url"`
}

func (h *CommunityHandler) Create(c echo.Context) error {
	var req createCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	community := &entity.Community{
		Name:        req.Name,
		Sport:       req.Sport,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		CreatorID:   currentUID(c),
		CreatedAt:   time.Now(),
	}

	return respondCreated(c, h.communityRepo.Create(c.Request().Context(), community))
}

func (h *CommunityHandler) Join(c echo.Context) error {
	return respond(c, h.communityRepo.Join(c.Request().Context(), c.Param("id"), currentUID(c)))
}

func (h *CommunityHandler) Leave(c echo.Context) error {
	return respond(c, h.communityRepo.Leave(c.Request().Context(), c.Param("id"), currentUID(c)))
}

func (h *CommunityHandler) ListPosts(c echo.Context) error {
	return respond(c, h.communityRepo.ListPosts(c.Request().Context(), c.Param("id")))
}

func (h *CommunityHandler) GetPost(c echo.Context) error {
	return respond(c, h.communityRepo.GetPost(c.Request().Context(), c.Param("id"), c.Param("postId")))
}

type createPostRequest struct {
	Content  string `json:"content" validate:"required,max=2000"`
	ImageURL string `json:"imageURL" validate:"omitempty,url"`
}

func (h *CommunityHandler) CreatePost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := repository.CreatePostInput{
		AuthorID: currentUID(c),
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	return respondCreated(c, h.communityRepo.CreatePost(c.Request().Context(), c.Param("id"), input))
}

// ToggleLike flips the caller's like and returns the post as re-read from
// the store, so the response reflects any concurrent likes.
func (h *CommunityHandler) ToggleLike(c echo.Context) error {
	return respond(c, h.communityRepo.ToggleLike(c.Request().Context(), c.Param("id"), c.Param("postId"), currentUID(c)))
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

func (h *CommunityHandler) AddComment(c echo.Context) error {
	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment := &entity.Comment{
		AuthorID: currentUID(c),
		Content:  req.Content,
	}

	return respondCreated(c, h.communityRepo.AddComment(c.Request().Context(), c.Param("id"), c.Param("postId"), comment))
}

func (h *CommunityHandler) ListComments(c echo.Context) error {
	return respond(c, h.communityRepo.ListComments(c.Request().Context(), c.Param("id"), c.Param("postId")))
}
