package router

import (
	"sparin/internal/adapter/api/handler"
	"sparin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCommunityRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	communityHandler := handler.GetCommunityHandler()

	communities := e.Group("/v1/communities")
	communities.Use(authMiddleware.Authenticate)

	communities.GET("", communityHandler.List)
	communities.POST("", communityHandler.Create)
	communities.GET("/:id", communityHandler.Get)
	communities.POST("/:id/join", communityHandler.Join)
	communities.POST("/:id/leave", communityHandler.Leave)

	communities.GET("/:id/posts", communityHandler.ListPosts)
	communities.POST("/:id/posts", communityHandler.CreatePost)
	communities.GET("/:id/posts/:postId", communityHandler.GetPost)
	communities.POST("/:id/posts/:postId/like", communityHandler.ToggleLike)
	communities.GET("/:id/posts/:postId/comments", communityHandler.ListComments)
	communities.POST("/:id/posts/:postId/comments", communityHandler.AddComment)
}
