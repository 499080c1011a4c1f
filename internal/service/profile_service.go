package service

import (
	"context"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// ProfileService lets a signed-in member read and edit their own record
type ProfileService struct {
	members *MemberService
}

// NewProfileService creates a new ProfileService
func NewProfileService(members *MemberService) *ProfileService {
	return &ProfileService{members: members}
}

// GetProfile retrieves the member record for email
func (s *ProfileService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	return s.members.GetMemberByEmail(ctx, email)
}

// UpdateProfile applies the profile fields of patch to the member with email.
// Email, chapter, positions and every admin field are left as stored.
func (s *ProfileService) UpdateProfile(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error) {
	existing, err := s.members.GetMemberByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.members.UpdateMember(ctx, existing.ID, profilePatch(*existing, patch))
}

// profilePatch starts from the stored record and takes only profile fields from in
func profilePatch(existing domain.User, in domain.UserPatch) domain.UserPatch {
	out := domain.PatchFromUser(existing)
	out.FirstName = keepSet(out.FirstName, in.FirstName)
	out.LastName = keepSet(out.LastName, in.LastName)
	out.FacebookName = keepSet(out.FacebookName, in.FacebookName)
	out.City = keepSet(out.City, in.City)
	out.Region = keepSet(out.Region, in.Region)
	out.PostalCode = keepSet(out.PostalCode, in.PostalCode)
	out.Country = keepSet(out.Country, in.Country)
	out.Occupation = keepSet(out.Occupation, in.Occupation)
	out.Level = keepSet(out.Level, in.Level)
	out.Biography = keepSet(out.Biography, in.Biography)
	out.StartedSurfing = keepSet(out.StartedSurfing, in.StartedSurfing)
	out.Boards = keepSet(out.Boards, in.Boards)
	out.SurfSpots = keepSet(out.SurfSpots, in.SurfSpots)
	return out
}

func keepSet[T any](stored, in *T) *T {
	if in != nil {
		return in
	}
	return stored
}
