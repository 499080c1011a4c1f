package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// ErrInvalidToken is returned when JWT validation fails
var ErrInvalidToken = errors.New("invalid token")

// ErrMemberNotFound is returned when the token's email has no member record
var ErrMemberNotFound = errors.New("member not found")

// MemberLookup provides member lookup by email
type MemberLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email string `json:"email"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Auth0JWTValidator validates Auth0 JWT tokens for WebSocket connections
type Auth0JWTValidator struct {
	validator *validator.Validator
	members   MemberLookup
}

// NewAuth0JWTValidator creates a new Auth0JWTValidator
func NewAuth0JWTValidator(domain, audience string, members MemberLookup) (*Auth0JWTValidator, error) {
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

	return &Auth0JWTValidator{
		validator: jwtValidator,
		members:   members,
	}, nil
}

// ValidateToken validates a JWT token and returns the chapter the connection follows
func (v *Auth0JWTValidator) ValidateToken(ctx context.Context, token string) (domain.Chapter, error) {
	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	custom, ok := validatedClaims.CustomClaims.(*CustomClaims)
	if !ok || custom.Email == "" {
		return "", ErrInvalidToken
	}

	return SubscriptionFor(ctx, v.members, custom.Email)
}

// SubscriptionFor resolves the chapter a member's connection follows.
// Admins follow every chapter. Lookup failures other than an unknown email
// are returned wrapped so callers can tell them from a rejected member.
func SubscriptionFor(ctx context.Context, members MemberLookup, email string) (domain.Chapter, error) {
	member, err := members.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", ErrMemberNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve subscription: %w", err)
	}
	if member.Admin {
		return AllChapters, nil
	}
	return member.Chapter, nil
}
