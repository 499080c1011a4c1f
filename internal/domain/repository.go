package domain

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// UserRepository defines the interface for member record persistence.
// Every record returned has passed ValidateUser.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	GetByQuery(ctx context.Context, query string) ([]*User, error)
	Create(ctx context.Context, draft User) (*User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// SearchRepository ranks member ids for free-text search
type SearchRepository interface {
	// Search returns matching ids in rank order; an empty query matches everyone
	Search(ctx context.Context, query string) ([]uuid.UUID, error)
	// Suggest returns the ids of the best matches for a partial query
	Suggest(ctx context.Context, partial string) ([]uuid.UUID, error)
	// AutoComplete returns the text that completes partial, or "" when nothing does
	AutoComplete(ctx context.Context, partial string) (string, error)
}

// UploadRepository stores a file and returns a URL it can be fetched from
type UploadRepository interface {
	Upload(ctx context.Context, fileName string, data io.Reader, contentType string, size int64) (string, error)
}

// DirectoryRepository mirrors member emails into the identity provider
type DirectoryRepository interface {
	// UpdateUserEmail is a no-op when no directory user has oldEmail
	UpdateUserEmail(ctx context.Context, oldEmail, newEmail string) error
}
