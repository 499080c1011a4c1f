package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// EmailKey is the context key for the caller's email claim
	EmailKey contextKey = "email"
	// MemberKey is the context key for the caller's member record
	MemberKey contextKey = "member"
)

// TokenValidator validates a raw bearer token
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// MemberProvider provides member lookup by email
type MemberProvider interface {
	GetMemberByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthMiddleware provides JWT validation middleware
type AuthMiddleware struct {
	validator TokenValidator
}

// NewAuthMiddleware creates a new AuthMiddleware with Auth0 configuration
func NewAuthMiddleware(domain, audience string) (*AuthMiddleware, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return NewAuthMiddlewareWithValidator(jwtValidator), nil
}

// NewAuthMiddlewareWithValidator creates an AuthMiddleware around an existing validator
func NewAuthMiddlewareWithValidator(v TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: v}
}

// Authenticate returns an Echo middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "missing authorization header")
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "invalid authorization header format")
			}

			claims, err := m.validator.ValidateToken(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "invalid token")
			}

			validatedClaims, ok := claims.(*validator.ValidatedClaims)
			if !ok {
				return unauthorizedError(c, "invalid claims")
			}

			custom, _ := validatedClaims.CustomClaims.(*CustomClaims)
			if custom == nil || strings.TrimSpace(custom.Email) == "" {
				return unauthorizedError(c, "token has no email claim")
			}

			ctx := context.WithValue(c.Request().Context(), EmailKey, strings.TrimSpace(custom.Email))
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireMember returns a middleware that loads the caller's member record.
// When adminOnly is set, callers without the admin flag are rejected.
func RequireMember(members MemberProvider, adminOnly bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := GetEmail(c)
			if email == "" {
				return unauthorizedError(c, "authentication required")
			}

			member, err := members.GetMemberByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return forbiddenError(c, "no member record for this account")
				}
				log.Error().Err(err).Str("email", email).Msg("Member lookup failed")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "member lookup failed")
			}
			if adminOnly && !member.Admin {
				return forbiddenError(c, "administrator access required")
			}

			ctx := context.WithValue(c.Request().Context(), MemberKey, member)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetEmail extracts the caller's email from the context
func GetEmail(c echo.Context) string {
	if email, ok := c.Request().Context().Value(EmailKey).(string); ok {
		return email
	}
	return ""
}

// GetMember extracts the caller's member record from the context
func GetMember(c echo.Context) *domain.User {
	if member, ok := c.Request().Context().Value(MemberKey).(*domain.User); ok {
		return member
	}
	return nil
}
