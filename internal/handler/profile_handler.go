package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/middleware"
	"github.com/wahinekai/memberdb-backend/internal/service"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile handles GET /profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AdminRecord
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	email := middleware.GetEmail(c)
	if email == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.profileService.GetProfile(c.Request().Context(), email)
	if err != nil {
		return NewDomainError(c, err, "get profile")
	}

	return c.JSON(http.StatusOK, user.WithAge(time.Now()))
}

// UpdateProfile handles PUT /profile
// @Summary Update own profile
// @Description Only profile fields are applied; email, chapter, positions and admin fields are ignored
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.UserPatch true "Profile fields"
// @Success 200 {object} domain.AdminRecord
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	email := middleware.GetEmail(c)
	if email == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var patch domain.UserPatch
	if err := c.Bind(&patch); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.profileService.UpdateProfile(c.Request().Context(), email, patch)
	if err != nil {
		return NewDomainError(c, err, "update profile")
	}

	return c.JSON(http.StatusOK, user.WithAge(time.Now()))
}
