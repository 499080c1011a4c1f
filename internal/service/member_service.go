package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/websocket"
)

// SuggestLimit caps the number of members returned by Suggest when no search engine is configured
const SuggestLimit = 5

// SearchInvalidator drops cached search results after a write
type SearchInvalidator interface {
	Invalidate(ctx context.Context)
}

// MemberDeletedPayload is the payload of a member.deleted event
type MemberDeletedPayload struct {
	ID      uuid.UUID      `json:"id"`
	Chapter domain.Chapter `json:"chapter"`
}

// MemberService handles member business logic on top of the user repository
type MemberService struct {
	userRepo       domain.UserRepository
	searchRepo     domain.SearchRepository
	directoryRepo  domain.DirectoryRepository
	invalidator    SearchInvalidator
	eventPublisher websocket.EventPublisher
}

// NewMemberService creates a new MemberService
// searchRepo and directoryRepo may be nil
func NewMemberService(
	userRepo domain.UserRepository,
	searchRepo domain.SearchRepository,
	directoryRepo domain.DirectoryRepository,
) *MemberService {
	return &MemberService{
		userRepo:      userRepo,
		searchRepo:    searchRepo,
		directoryRepo: directoryRepo,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *MemberService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetSearchInvalidator sets the cache dropped after every write
func (s *MemberService) SetSearchInvalidator(invalidator SearchInvalidator) {
	s.invalidator = invalidator
}

func (s *MemberService) publishEvent(chapter domain.Chapter, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(chapter, event)
	}
}

// memberEvent carries the member tier for chapter subscribers and the full record for admins
func memberEvent(build func(payload interface{}) websocket.Event, u *domain.User) websocket.Event {
	return build(u.Member).WithAdminPayload(u.WithAge(time.Now()))
}

func (s *MemberService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
}

// GetMember retrieves a member by ID
func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetMemberByEmail retrieves a member by email
func (s *MemberService) GetMemberByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// ListMembers retrieves every member
func (s *MemberService) ListMembers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// QueryMembers retrieves members matching any token of query
func (s *MemberService) QueryMembers(ctx context.Context, query string) ([]*domain.User, error) {
	return s.userRepo.GetByQuery(ctx, query)
}

// CreateMember creates a new member from draft
func (s *MemberService) CreateMember(ctx context.Context, draft domain.User) (*domain.User, error) {
	created, err := s.userRepo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publishEvent(created.Chapter, memberEvent(websocket.MemberCreated, created))

	return created, nil
}

// UpdateMember applies patch to the member with id
// A changed email is mirrored into the directory after the record is written
func (s *MemberService) UpdateMember(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.syncDirectoryEmail(ctx, existing.Email, updated.Email)
	s.invalidate(ctx)

	evt := memberEvent(websocket.MemberUpdated, updated)
	s.publishEvent(updated.Chapter, evt)
	if existing.Chapter != updated.Chapter {
		s.publishEvent(existing.Chapter, evt)
	}

	return updated, nil
}

// DeleteMember deletes the member with id
func (s *MemberService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.publishEvent(existing.Chapter, websocket.MemberDeleted(MemberDeletedPayload{
		ID:      id,
		Chapter: existing.Chapter,
	}))

	return nil
}

// SearchMembers returns members ranked by the search engine
// An empty query returns every member
func (s *MemberService) SearchMembers(ctx context.Context, query string) ([]*domain.User, error) {
	if s.searchRepo == nil {
		if query == "" {
			return s.userRepo.GetAll(ctx)
		}
		return s.userRepo.GetByQuery(ctx, query)
	}

	ids, err := s.searchRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	return s.userRepo.GetByIDs(ctx, ids)
}

// SuggestMembers returns the best matches for a partially typed query
func (s *MemberService) SuggestMembers(ctx context.Context, partial string) ([]*domain.User, error) {
	if s.searchRepo == nil {
		users, err := s.userRepo.GetByQuery(ctx, partial)
		if err != nil {
			return nil, err
		}
		if len(users) > SuggestLimit {
			users = users[:SuggestLimit]
		}
		return users, nil
	}

	ids, err := s.searchRepo.Suggest(ctx, partial)
	if err != nil {
		return nil, fmt.Errorf("suggest members: %w", err)
	}
	return s.userRepo.GetByIDs(ctx, ids)
}

// AutoComplete returns the text completing partial, or "" when nothing does
func (s *MemberService) AutoComplete(ctx context.Context, partial string) (string, error) {
	if s.searchRepo == nil {
		return "", nil
	}
	completion, err := s.searchRepo.AutoComplete(ctx, partial)
	if err != nil {
		return "", fmt.Errorf("autocomplete: %w", err)
	}
	return completion, nil
}

func (s *MemberService) syncDirectoryEmail(ctx context.Context, oldEmail, newEmail string) {
	if s.directoryRepo == nil || oldEmail == newEmail {
		return
	}
	if err := s.directoryRepo.UpdateUserEmail(ctx, oldEmail, newEmail); err != nil {
		log.Error().
			Err(err).
			Str("old_email", oldEmail).
			Str("new_email", newEmail).
			Msg("Failed to update directory email")
	}
}
