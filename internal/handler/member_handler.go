package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/middleware"
	"github.com/wahinekai/memberdb-backend/internal/service"
)

// MemberHandler handles member-related HTTP requests
type MemberHandler struct {
	memberService *service.MemberService
	photoService  *service.PhotoService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *service.MemberService, photoService *service.PhotoService) *MemberHandler {
	return &MemberHandler{memberService: memberService, photoService: photoService}
}

// AutoCompleteResponse represents the autocomplete response
type AutoCompleteResponse struct {
	Query      string `json:"query"`
	Completion string `json:"completion"`
}

// memberView returns what viewer may see of u: the full record for admins and
// for the member themselves, the member tier for everyone else
func memberView(u *domain.User, viewer *domain.User) interface{} {
	if viewer != nil && (viewer.Admin || viewer.ID == u.ID) {
		return u.WithAge(time.Now())
	}
	return u.Member
}

func memberViews(users []*domain.User, viewer *domain.User) []interface{} {
	out := make([]interface{}, 0, len(users))
	for _, u := range users {
		out = append(out, memberView(u, viewer))
	}
	return out
}

func parseMemberID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, NewValidationError(c, "Invalid member ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}
	return id, nil
}

// ListMembers handles GET /api/v1/members
// @Summary List members
// @Description Get every member record
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Member
// @Failure 401 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /members [get]
func (h *MemberHandler) ListMembers(c echo.Context) error {
	users, err := h.memberService.ListMembers(c.Request().Context())
	if err != nil {
		return NewDomainError(c, err, "list members")
	}
	return c.JSON(http.StatusOK, memberViews(users, middleware.GetMember(c)))
}

// GetMember handles GET /api/v1/members/:id
// @Summary Get a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} domain.AdminRecord
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /members/{id} [get]
func (h *MemberHandler) GetMember(c echo.Context) error {
	id, err := parseMemberID(c)
	if err != nil {
		return err
	}

	user, err := h.memberService.GetMember(c.Request().Context(), id)
	if err != nil {
		return NewDomainError(c, err, "get member")
	}
	return c.JSON(http.StatusOK, memberView(user, middleware.GetMember(c)))
}

// GetMemberByEmail handles GET /api/v1/members/by-email?email=
// @Summary Get a member by email
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param email query string true "Email address"
// @Success 200 {object} domain.AdminRecord
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /members/by-email [get]
func (h *MemberHandler) GetMemberByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "email", Message: "Email is required"},
		})
	}

	user, err := h.memberService.GetMemberByEmail(c.Request().Context(), email)
	if err != nil {
		return NewDomainError(c, err, "get member")
	}
	return c.JSON(http.StatusOK, memberView(user, middleware.GetMember(c)))
}

// QueryMembers handles GET /api/v1/members/query?q=
// @Summary Query members
// @Description Match members whose name, city, region or occupation contains any word of q
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param q query string true "Query"
// @Success 200 {array} domain.Member
// @Failure 400 {object} ProblemDetails
// @Router /members/query [get]
func (h *MemberHandler) QueryMembers(c echo.Context) error {
	users, err := h.memberService.QueryMembers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return NewDomainError(c, err, "query members")
	}
	return c.JSON(http.StatusOK, memberViews(users, middleware.GetMember(c)))
}

// SearchMembers handles GET /api/v1/members/search?q=
// @Summary Search members
// @Description Ranked full-text search; an empty query returns every member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Success 200 {array} domain.Member
// @Router /members/search [get]
func (h *MemberHandler) SearchMembers(c echo.Context) error {
	users, err := h.memberService.SearchMembers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return NewDomainError(c, err, "search members")
	}
	return c.JSON(http.StatusOK, memberViews(users, middleware.GetMember(c)))
}

// SuggestMembers handles GET /api/v1/members/suggest?q=
// @Summary Suggest members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param q query string true "Partial text"
// @Success 200 {array} domain.Member
// @Router /members/suggest [get]
func (h *MemberHandler) SuggestMembers(c echo.Context) error {
	users, err := h.memberService.SuggestMembers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return NewDomainError(c, err, "suggest members")
	}
	return c.JSON(http.StatusOK, memberViews(users, middleware.GetMember(c)))
}

// AutoComplete handles GET /api/v1/members/autocomplete?q=
// @Summary Autocomplete a partial query
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param q query string true "Partial text"
// @Success 200 {object} AutoCompleteResponse
// @Router /members/autocomplete [get]
func (h *MemberHandler) AutoComplete(c echo.Context) error {
	q := c.QueryParam("q")
	completion, err := h.memberService.AutoComplete(c.Request().Context(), q)
	if err != nil {
		return NewDomainError(c, err, "autocomplete")
	}
	return c.JSON(http.StatusOK, AutoCompleteResponse{Query: q, Completion: completion})
}

// CreateMember handles POST /api/v1/members
// @Summary Create a member
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.User true "Member record"
// @Success 201 {object} domain.AdminRecord
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /members [post]
func (h *MemberHandler) CreateMember(c echo.Context) error {
	var draft domain.User
	if err := c.Bind(&draft); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	// ids are always assigned by the server
	draft.ID = uuid.Nil

	created, err := h.memberService.CreateMember(c.Request().Context(), draft)
	if err != nil {
		return NewDomainError(c, err, "create member")
	}

	log.Info().Str("member_id", created.ID.String()).Msg("Member created")
	return c.JSON(http.StatusCreated, created.WithAge(time.Now()))
}

// UpdateMember handles PUT /api/v1/members/:id
// @Summary Update a member
// @Description Omitted fields keep their stored value; status dates and flags are always taken as sent
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body domain.UserPatch true "Member patch"
// @Success 200 {object} domain.AdminRecord
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /members/{id} [put]
func (h *MemberHandler) UpdateMember(c echo.Context) error {
	id, err := parseMemberID(c)
	if err != nil {
		return err
	}

	var patch domain.UserPatch
	if err := c.Bind(&patch); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.memberService.UpdateMember(c.Request().Context(), id, patch)
	if err != nil {
		return NewDomainError(c, err, "update member")
	}
	return c.JSON(http.StatusOK, updated.WithAge(time.Now()))
}

// DeleteMember handles DELETE /api/v1/members/:id
// @Summary Delete a member
// @Tags members
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c echo.Context) error {
	id, err := parseMemberID(c)
	if err != nil {
		return err
	}

	if err := h.memberService.DeleteMember(c.Request().Context(), id); err != nil {
		return NewDomainError(c, err, "delete member")
	}

	log.Info().Str("member_id", id.String()).Msg("Member deleted")
	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto handles POST /api/v1/members/:id/photo
// @Summary Upload a member photo
// @Description Admins may upload for anyone; members only for themselves
// @Tags members
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param file formData file true "Image file"
// @Success 200 {object} domain.AdminRecord
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /members/{id}/photo [post]
func (h *MemberHandler) UploadPhoto(c echo.Context) error {
	id, err := parseMemberID(c)
	if err != nil {
		return err
	}

	viewer := middleware.GetMember(c)
	if viewer == nil || (!viewer.Admin && viewer.ID != id) {
		return NewForbiddenError(c, "Cannot change another member's photo")
	}

	if h.photoService == nil || !h.photoService.IsEnabled() {
		return NewServiceUnavailableError(c, "Photo uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	updated, err := h.photoService.UploadPhoto(c.Request().Context(), id, data, file.Filename)
	if err != nil {
		if msg, ok := imageErrorMessage(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: msg},
			})
		}
		return NewDomainError(c, err, "upload photo")
	}

	return c.JSON(http.StatusOK, updated.WithAge(time.Now()))
}

func imageErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrImageTooLarge):
		return "File too large. Maximum size is 5MB", true
	case errors.Is(err, service.ErrInvalidFormat):
		return "Invalid format. Supported: JPEG, PNG, WebP", true
	case errors.Is(err, service.ErrImageTooSmall):
		return "Image too small. Minimum 50x50 pixels", true
	case errors.Is(err, service.ErrInvalidImageData):
		return "Invalid image data", true
	}
	return "", false
}
