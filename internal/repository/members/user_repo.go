// Package members implements member record persistence over a document store.
package members

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/docstore"
	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/retry"
)

const emailField = "email"

// UserRepository implements domain.UserRepository on a docstore.Store.
// Every store call runs under the retry policy and every record is validated
// on its way in and out.
type UserRepository struct {
	store  docstore.Store
	policy retry.Policy
}

var _ domain.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository
func NewUserRepository(store docstore.Store, policy retry.Policy) *UserRepository {
	return &UserRepository{store: store, policy: policy}
}

// GetByEmail returns the single record with email. Zero or several matches are errors.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	docs, err := r.query(ctx, docstore.Eq(emailField, email), 2)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	switch len(docs) {
	case 0:
		return nil, domain.ErrUserNotFound
	case 1:
		return decodeUser(docs[0])
	default:
		log.Error().Str("email", email).Msg("Multiple users share an email")
		return nil, domain.ErrMultipleFound
	}
}

// GetByID retrieves a record by id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	docs, err := r.query(ctx, docstore.Eq(docstore.IDField, id.String()), 1)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return decodeUser(docs[0])
}

// GetByIDs returns the records for ids in the same order. Ids with no record are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}

	filters := make([]docstore.Filter, len(ids))
	for i, id := range ids {
		filters[i] = docstore.Eq(docstore.IDField, id.String())
	}
	docs, err := r.query(ctx, docstore.Or(filters...), 0)
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}

	byID := make(map[string]docstore.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID()] = doc
	}

	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		doc, ok := byID[id.String()]
		if !ok {
			log.Debug().Str("id", id.String()).Msg("Skipping id with no stored record")
			continue
		}
		u, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// GetAll returns every stored record
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	docs, err := retry.Do(ctx, r.policy, r.store.QueryAll)
	if err != nil {
		return nil, fmt.Errorf("get all users: %w", mapStoreErr(err))
	}
	return decodeUsers(docs)
}

// GetByQuery returns records matching any token of a free-text query
func (r *UserRepository) GetByQuery(ctx context.Context, query string) ([]*domain.User, error) {
	filter, err := BuildQueryPredicate(query)
	if err != nil {
		return nil, err
	}
	docs, err := r.query(ctx, filter, 0)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return decodeUsers(docs)
}

// Create validates and stores a new record. A draft without an id gets a fresh one.
// The email check before the write is best effort; the store's unique email
// constraint catches the race that remains.
func (r *UserRepository) Create(ctx context.Context, draft domain.User) (*domain.User, error) {
	if draft.ID == uuid.Nil {
		draft = domain.NewUser(draft)
	}
	draft.Timestamp = nil

	valid, err := domain.ValidateUser(draft)
	if err != nil {
		return nil, err
	}

	existing, err := r.query(ctx, docstore.Eq(emailField, valid.Email), 1)
	if err != nil {
		if errors.Is(err, domain.ErrCancelled) {
			return nil, err
		}
		// rejecting is the safe answer when the check itself is inconclusive
		return nil, fmt.Errorf("%w: duplicate check failed: %w", domain.ErrDuplicateEmail, err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrDuplicateEmail
	}

	doc, err := encodeUser(valid)
	if err != nil {
		return nil, err
	}
	stored, err := retry.Do(ctx, r.policy, func(ctx context.Context) (docstore.Document, error) {
		return r.store.Insert(ctx, doc)
	})
	if err != nil {
		switch {
		case errors.Is(err, docstore.ErrUniqueViolation):
			return nil, domain.ErrDuplicateEmail
		case errors.Is(err, docstore.ErrConflict):
			// an earlier attempt may have landed before its response was lost
			if u, getErr := r.GetByID(ctx, valid.ID); getErr == nil && u.Email == valid.Email {
				return u, nil
			}
			return nil, fmt.Errorf("create user: %w", err)
		default:
			return nil, fmt.Errorf("create user: %w", mapStoreErr(err))
		}
	}

	created, err := decodeUser(stored)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", created.ID.String()).Msg("User created")
	return created, nil
}

// Update merges patch over the stored record, validates the result and writes it
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	if err := domain.ValidatePatch(patch); err != nil {
		return nil, err
	}

	if email, ok := patch.PatchEmail(); ok {
		others, err := r.query(ctx, docstore.Eq(emailField, email), 2)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		for _, doc := range others {
			if doc.ID() != id.String() {
				return nil, domain.ErrConflictingEmail
			}
		}
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := domain.ValidateUser(domain.ApplyPatch(*existing, patch))
	if err != nil {
		return nil, err
	}

	doc, err := encodeUser(merged)
	if err != nil {
		return nil, err
	}
	stored, err := retry.Do(ctx, r.policy, func(ctx context.Context) (docstore.Document, error) {
		return r.store.Replace(ctx, id.String(), doc)
	})
	if err != nil {
		if errors.Is(err, docstore.ErrUniqueViolation) {
			return nil, domain.ErrConflictingEmail
		}
		return nil, fmt.Errorf("update user: %w", mapStoreErr(err))
	}

	updated, err := decodeUser(stored)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", id.String()).Msg("User updated")
	return updated, nil
}

// DeleteByID removes a record
func (r *UserRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := retry.Run(ctx, r.policy, func(ctx context.Context) error {
		return r.store.DeleteByID(ctx, id.String())
	})
	if err != nil {
		err = mapStoreErr(err)
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	log.Info().Str("user_id", id.String()).Msg("User deleted")
	return nil
}

func (r *UserRepository) query(ctx context.Context, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	docs, err := retry.Do(ctx, r.policy, func(ctx context.Context) ([]docstore.Document, error) {
		return r.store.Query(ctx, filter, limit)
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return docs, nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
