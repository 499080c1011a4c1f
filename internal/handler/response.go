package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://wahinekai.org/errors/validation"
	ErrorTypeNotFound     = "https://wahinekai.org/errors/not-found"
	ErrorTypeUnauthorized = "https://wahinekai.org/errors/unauthorized"
	ErrorTypeForbidden    = "https://wahinekai.org/errors/forbidden"
	ErrorTypeConflict     = "https://wahinekai.org/errors/conflict"
	ErrorTypeUnavailable  = "https://wahinekai.org/errors/unavailable"
	ErrorTypeCancelled    = "https://wahinekai.org/errors/cancelled"
	ErrorTypeInternal     = "https://wahinekai.org/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return c.JSON(http.StatusForbidden, ProblemDetails{
		Type:     ErrorTypeForbidden,
		Title:    "Forbidden",
		Status:   http.StatusForbidden,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewServiceUnavailableError creates a service unavailable error response
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// StatusClientClosedRequest is reported when the caller went away before the work finished
const StatusClientClosedRequest = 499

// NewCancelledError creates a cancelled request response
func NewCancelledError(c echo.Context, detail string) error {
	return c.JSON(StatusClientClosedRequest, ProblemDetails{
		Type:     ErrorTypeCancelled,
		Title:    "Request Cancelled",
		Status:   StatusClientClosedRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// conflictDetails are the client-facing messages for uniqueness failures
var conflictDetails = []struct {
	err    error
	detail string
}{
	{domain.ErrDuplicateEmail, "A member with this email already exists"},
	{domain.ErrConflictingEmail, "This email belongs to another member"},
	{domain.ErrMultipleFound, "More than one member has this email"},
}

func conflictDetail(err error) (string, bool) {
	for _, cd := range conflictDetails {
		if errors.Is(err, cd.err) {
			return cd.detail, true
		}
	}
	return "", false
}

// NewDomainError maps a member operation error to a problem details response.
// Details are fixed per error kind; the wrapped cause is only logged.
func NewDomainError(c echo.Context, err error, action string) error {
	var invalid *domain.InvalidRecordError
	conflict, isConflict := conflictDetail(err)
	switch {
	case errors.Is(err, domain.ErrCorruptRecord):
		log.Error().Err(err).Str("action", action).Msg("Stored member record failed validation")
		return NewInternalError(c, "Failed to "+action)
	case errors.As(err, &invalid):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: invalid.Field, Message: invalid.Reason},
		})
	case errors.Is(err, domain.ErrEmptyQuery):
		return NewValidationError(c, "Query must not be empty", nil)
	case errors.Is(err, domain.ErrEmailRequired):
		return NewValidationError(c, "Email is required", nil)
	case errors.Is(err, domain.ErrUserNotFound):
		return NewNotFoundError(c, "Member not found")
	case isConflict:
		// an inconclusive duplicate check wraps the store failure; only the kind is shown
		log.Warn().Err(err).Str("action", action).Msg("Member write conflict")
		return NewConflictError(c, conflict)
	case errors.Is(err, domain.ErrCancelled):
		return NewCancelledError(c, "Request cancelled")
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Str("action", action).Msg("Member store unavailable")
		return NewServiceUnavailableError(c, "Member store is temporarily unavailable")
	}

	log.Error().Err(err).Str("action", action).Msg("Member operation failed")
	return NewInternalError(c, "Failed to "+action)
}
