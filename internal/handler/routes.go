package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/wahinekai/memberdb-backend/internal/middleware"
)

// Handlers groups every HTTP handler served under /api/v1
type Handlers struct {
	Member    *MemberHandler
	Profile   *ProfileHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, members middleware.MemberProvider, rateLimiter *middleware.RateLimiter, h Handlers) {
	// WebSocket authenticates its own upgrade request
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	if rateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(rateLimiter))
	}

	// Profile routes: any signed-in account with a member record
	profile := api.Group("/profile")
	profile.GET("", h.Profile.GetProfile)
	profile.PUT("", h.Profile.UpdateProfile)

	// Member read routes
	read := api.Group("/members", middleware.RequireMember(members, false))
	read.GET("", h.Member.ListMembers)
	read.GET("/query", h.Member.QueryMembers)
	read.GET("/search", h.Member.SearchMembers)
	read.GET("/suggest", h.Member.SuggestMembers)
	read.GET("/autocomplete", h.Member.AutoComplete)
	read.GET("/:id", h.Member.GetMember)
	read.POST("/:id/photo", h.Member.UploadPhoto)

	// Member admin routes
	admin := api.Group("/members", middleware.RequireMember(members, true))
	admin.POST("", h.Member.CreateMember)
	admin.GET("/by-email", h.Member.GetMemberByEmail)
	admin.PUT("/:id", h.Member.UpdateMember)
	admin.DELETE("/:id", h.Member.DeleteMember)
}
