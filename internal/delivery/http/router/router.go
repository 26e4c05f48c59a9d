// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shelfmark/internal/delivery/http/middleware"
	"shelfmark/internal/delivery/http/router/handler"
	"shelfmark/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	BookmarkHandler *handler.BookmarkHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	bookmarkHandler *handler.BookmarkHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		bookmarkHandler: params.BookmarkHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes. Refresh and sign-out require a valid access token; the
	// refresh token alone is never enough to reach them.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.POST("/refresh", r.authHandler.Refresh, r.authMiddleware.Authenticate)
		authGroup.POST("/signout", r.authHandler.SignOut, r.authMiddleware.Authenticate)
	}

	// User routes that require authentication
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetMe)
		userGroup.PATCH("", r.userHandler.EditUser)
	}

	// Bookmark routes require authentication and the "admin" role
	bookmarkGroup := e.Group("/bookmarks")
	bookmarkGroup.Use(r.authMiddleware.Authenticate)
	bookmarkGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		bookmarkGroup.POST("", r.bookmarkHandler.CreateBookmark)
		bookmarkGroup.GET("", r.bookmarkHandler.ListBookmarks)
		bookmarkGroup.GET("/:id", r.bookmarkHandler.GetBookmark)
		bookmarkGroup.GET("/:id/qrcode", r.bookmarkHandler.ShareBookmarkQR)
		bookmarkGroup.PATCH("/:id", r.bookmarkHandler.EditBookmark)
		bookmarkGroup.DELETE("/:id", r.bookmarkHandler.DeleteBookmark)
	}
}
