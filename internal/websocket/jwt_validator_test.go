package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// mockMemberLookup is a test double for MemberLookup
type mockMemberLookup struct {
	users map[string]*domain.User
	err   error
}

func (m *mockMemberLookup) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func memberIn(chapter domain.Chapter, admin bool) *domain.User {
	u := &domain.User{Admin: admin}
	u.Chapter = chapter
	return u
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{}
	assert.NoError(t, claims.Validate(context.Background()))
}

func TestNewAuth0JWTValidator_Success(t *testing.T) {
	lookup := &mockMemberLookup{}

	v, err := NewAuth0JWTValidator("test.auth0.com", "https://api.wahinekai.org", lookup)
	require.NoError(t, err)
	assert.NotNil(t, v.validator)
	assert.Equal(t, lookup, v.members)
}

func TestAuth0JWTValidator_ValidateToken_InvalidJWT(t *testing.T) {
	v, err := NewAuth0JWTValidator("test.auth0.com", "https://api.wahinekai.org", &mockMemberLookup{})
	require.NoError(t, err)

	chapter, err := v.ValidateToken(context.Background(), "invalid-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.Empty(t, chapter)
}

func TestSubscriptionFor(t *testing.T) {
	lookup := &mockMemberLookup{users: map[string]*domain.User{
		"member@example.com": memberIn(chapterHawaii, false),
		"admin@example.com":  memberIn(chapterOregon, true),
	}}
	ctx := context.Background()

	t.Run("member follows own chapter", func(t *testing.T) {
		chapter, err := SubscriptionFor(ctx, lookup, "member@example.com")
		require.NoError(t, err)
		assert.Equal(t, chapterHawaii, chapter)
	})

	t.Run("admin follows every chapter", func(t *testing.T) {
		chapter, err := SubscriptionFor(ctx, lookup, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, AllChapters, chapter)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := SubscriptionFor(ctx, lookup, "nobody@example.com")
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("store failure is not a rejection", func(t *testing.T) {
		failing := &mockMemberLookup{err: domain.ErrStoreUnavailable}
		_, err := SubscriptionFor(ctx, failing, "member@example.com")
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, ErrMemberNotFound)
	})
}
