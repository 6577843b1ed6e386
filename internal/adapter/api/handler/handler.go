package handler

import (
	"github.com/labstack/echo/v4"

	"sparin/internal/domain/repository"
	"sparin/internal/infrastructure/websocket"
	"sparin/internal/usecase"
	"sparin/pkg/errors"
	"sparin/pkg/resource"
	"sparin/pkg/response"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	communityHandler *CommunityHandler
	roomHandler      *RoomHandler
	campaignHandler  *CampaignHandler
	chatHandler      *ChatHandler
	matchHandler     *MatchHandler
	feedHandler      *FeedHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userRepo repository.UserRepository,
	communityRepo repository.CommunityRepository,
	roomRepo repository.RoomRepository,
	campaignRepo repository.CampaignRepository,
	chatRepo repository.ChatRepository,
	matchRepo repository.MatchRepository,
	feedRepo repository.FeedRepository,
	wsManager *websocket.Manager,
	media MediaUploader,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userRepo, media)
	communityHandler = NewCommunityHandler(communityRepo)
	roomHandler = NewRoomHandler(roomRepo, wsManager)
	campaignHandler = NewCampaignHandler(campaignRepo)
	chatHandler = NewChatHandler(chatRepo, wsManager)
	matchHandler = NewMatchHandler(matchRepo, wsManager)
	feedHandler = NewFeedHandler(feedRepo)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetCommunityHandler() *CommunityHandler {
	return communityHandler
}

func GetRoomHandler() *RoomHandler {
	return roomHandler
}

func GetCampaignHandler() *CampaignHandler {
	return campaignHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetMatchHandler() *MatchHandler {
	return matchHandler
}

func GetFeedHandler() *FeedHandler {
	return feedHandler
}

// respond maps a terminal envelope onto the HTTP response. Success data
// goes out as-is; errors keep their application code and status.
func respond[T any](c echo.Context, res resource.Resource[T]) error {
	if data, ok := res.Data(); ok {
		return response.Success(c, data)
	}
	if cause := res.Cause(); cause != nil {
		return response.Error(c, cause)
	}
	return response.Error(c, errors.Internal(res.Message(), nil))
}

func respondCreated[T any](c echo.Context, res resource.Resource[T]) error {
	if data, ok := res.Data(); ok {
		return response.Created(c, data)
	}
	if cause := res.Cause(); cause != nil {
		return response.Error(c, cause)
	}
	return response.Error(c, errors.Internal(res.Message(), nil))
}

// currentUID reads the uid the auth middleware planted.
func currentUID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
