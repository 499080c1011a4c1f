// Package directory keeps the identity provider's user emails in step with member records.
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/auth0/go-auth0"
	"github.com/auth0/go-auth0/management"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// userAPI is the part of the Auth0 user manager the directory calls
type userAPI interface {
	ListByEmail(ctx context.Context, email string, opts ...management.RequestOption) ([]*management.User, error)
	Update(ctx context.Context, id string, u *management.User, opts ...management.RequestOption) error
}

// Auth0Directory implements domain.DirectoryRepository with the Auth0 Management API
type Auth0Directory struct {
	users userAPI
}

var _ domain.DirectoryRepository = (*Auth0Directory)(nil)

// NewAuth0Directory authenticates against the Management API with client credentials
func NewAuth0Directory(ctx context.Context, auth0Domain, clientID, clientSecret string) (*Auth0Directory, error) {
	m, err := management.New(auth0Domain, management.WithClientCredentials(ctx, clientID, clientSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to create Auth0 management client: %w", err)
	}
	return &Auth0Directory{users: m.User}, nil
}

// UpdateUserEmail changes the email of every directory user registered under oldEmail
func (d *Auth0Directory) UpdateUserEmail(ctx context.Context, oldEmail, newEmail string) error {
	oldEmail = strings.TrimSpace(oldEmail)
	newEmail = strings.TrimSpace(newEmail)
	if oldEmail == "" || newEmail == "" || oldEmail == newEmail {
		return nil
	}

	users, err := d.users.ListByEmail(ctx, oldEmail)
	if err != nil {
		return fmt.Errorf("failed to look up directory user: %w", err)
	}
	if len(users) == 0 {
		log.Debug().Str("email", oldEmail).Msg("No directory user to update")
		return nil
	}

	for _, u := range users {
		if err := d.users.Update(ctx, u.GetID(), &management.User{Email: auth0.String(newEmail)}); err != nil {
			return fmt.Errorf("failed to update directory user %s: %w", u.GetID(), err)
		}
		log.Info().Str("auth0_id", u.GetID()).Msg("Directory email updated")
	}
	return nil
}

// NoOpDirectory is used when Management API credentials are not configured
type NoOpDirectory struct{}

var _ domain.DirectoryRepository = NoOpDirectory{}

func (NoOpDirectory) UpdateUserEmail(ctx context.Context, oldEmail, newEmail string) error {
	return nil
}
