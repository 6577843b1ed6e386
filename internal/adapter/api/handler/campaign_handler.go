package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
)

type CampaignHandler struct {
	campaignRepo repository.CampaignRepository
}

func NewCampaignHandler(campaignRepo repository.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{
		campaignRepo: campaignRepo,
	}
}

func (h *CampaignHandler) List(c echo.Context) error {
	return respond(c, h.campaignRepo.List(c.Request().Context()))
}

func (h *CampaignHandler) Get(c echo.Context) error {
	return respond(c, h.campaignRepo.Get(c.Request().Context(), c.Param("id")))
}

type createCampaignRequest struct {
	Title       string    `json:"title" validate:"required,min=3"`
	Description string    `json:"description"`
	Sport       string    `json:"sport" validate:"required"`
	BannerURL   string    `json:"bannerURL" validate:"omitempty,url"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
}

func (h *CampaignHandler) Create(c echo.Context) error {
	var req createCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign := &entity.Campaign{
		Title:       req.Title,
		Description: req.Description,
		Sport:       req.Sport,
		BannerURL:   req.BannerURL,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatorID:   currentUID(c),
	}

	return respondCreated(c, h.campaignRepo.Create(c.Request().Context(), campaign))
}

func (h *CampaignHandler) Join(c echo.Context) error {
	return respond(c, h.campaignRepo.Join(c.Request().Context(), c.Param("id"), currentUID(c)))
}

func (h *CampaignHandler) Leave(c echo.Context) error {
	return respond(c, h.campaignRepo.Leave(c.Request().Context(), c.Param("id"), currentUID(c)))
}
