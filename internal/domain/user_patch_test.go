package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedUser() User {
	u := validUser()
	u.LastName = strPtr("Doe")
	u.City = strPtr("Oceanside")
	u.Chapter = ChapterSanDiego
	u.Status = StatusActivePaying
	u.JoinedDate = date(2020, 1, 1)
	u.RenewalDate = date(2021, 1, 1)
	u.WonSurfboard = true
	u.DateSurfboardWon = date(2020, 7, 4)
	u.Boards = []string{"longboard"}
	ts := int64(1700000000)
	u.Timestamp = &ts
	return u
}

func TestApplyPatch_NilKeepsExisting(t *testing.T) {
	existing := storedUser()
	patch := UserPatch{
		City:         strPtr("Encinitas"),
		JoinedDate:   existing.JoinedDate,
		RenewalDate:  existing.RenewalDate,
		WonSurfboard: true,
	}

	merged := ApplyPatch(existing, patch)

	assert.Equal(t, existing.ID, merged.ID)
	assert.Equal(t, existing.Email, merged.Email)
	assert.Equal(t, "Jane", merged.FirstName)
	assert.Equal(t, "Doe", *merged.LastName)
	assert.Equal(t, "Encinitas", *merged.City)
	assert.Equal(t, ChapterSanDiego, merged.Chapter)
	assert.Equal(t, StatusActivePaying, merged.Status)
	assert.Equal(t, []string{"longboard"}, merged.Boards)
	assert.Equal(t, existing.DateSurfboardWon, merged.DateSurfboardWon)
	assert.Equal(t, existing.Timestamp, merged.Timestamp)
}

func TestApplyPatch_DatesAndFlagsVerbatim(t *testing.T) {
	existing := storedUser()
	existing.Admin = true

	merged := ApplyPatch(existing, UserPatch{})

	assert.Nil(t, merged.JoinedDate)
	assert.Nil(t, merged.RenewalDate)
	assert.Nil(t, merged.TerminatedDate)
	assert.False(t, merged.Admin)
	assert.False(t, merged.WonSurfboard)
	assert.False(t, merged.NeedsNewMemberBag)
	assert.False(t, merged.SocialMediaOptOut)
}

func TestApplyPatch_DoesNotAliasPatch(t *testing.T) {
	boards := []string{"shortboard"}
	city := "Carlsbad"
	merged := ApplyPatch(storedUser(), UserPatch{Boards: &boards, City: &city})

	boards[0] = "changed"
	city = "changed"
	assert.Equal(t, []string{"shortboard"}, merged.Boards)
	assert.Equal(t, "Carlsbad", *merged.City)
}

func TestApplyPatch_FromUserRoundTrip(t *testing.T) {
	existing, err := ValidateUser(storedUser())
	require.NoError(t, err)

	merged := ApplyPatch(existing, PatchFromUser(existing))
	assert.Equal(t, existing, merged)
}

func TestValidatePatch(t *testing.T) {
	badLevel := Level("Pro")
	badEntered := EnteredStatus("Maybe")
	tests := []struct {
		name    string
		patch   UserPatch
		wantErr bool
	}{
		{"empty patch", UserPatch{}, false},
		{"blank email", UserPatch{Email: strPtr(" ")}, true},
		{"blank first name", UserPatch{FirstName: strPtr("")}, true},
		{"unknown level", UserPatch{Level: &badLevel}, true},
		{"unknown chapter", UserPatch{Chapter: "Atlantis"}, true},
		{"unknown status", UserPatch{Status: "Suspended"}, true},
		{"unknown entered status", UserPatch{EnteredInFacebookChapter: &badEntered}, true},
		{"bad position", UserPatch{Positions: &[]Position{{Name: PositionPresident}}}, true},
		{"valid fields", UserPatch{Email: strPtr("a@b.c"), Chapter: ChapterHawaii, Status: StatusTerminated}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatch(tt.patch)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecord)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
