package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func validUser() User {
	u := User{}
	u.ID = uuid.New()
	u.Email = "jane@example.com"
	u.FirstName = "Jane"
	u.Status = StatusPending
	return u
}

func TestValidateUser_Defaults(t *testing.T) {
	out, err := ValidateUser(validUser())
	require.NoError(t, err)

	assert.Equal(t, ChapterInternational, out.Chapter)
	assert.Equal(t, StatusPending, out.Status)
	assert.Equal(t, EnteredStatusEntered, out.EnteredInFacebookChapter)
	assert.Equal(t, EnteredStatusNotEntered, out.EnteredInFacebookWki)
	assert.NotNil(t, out.Boards)
	assert.NotNil(t, out.SurfSpots)
	assert.NotNil(t, out.Positions)
}

func TestValidateUser_TrimsStrings(t *testing.T) {
	u := validUser()
	u.Email = "  jane@example.com "
	u.FirstName = " Jane\t"
	u.LastName = strPtr("  Doe ")
	u.City = strPtr("   ")

	out, err := ValidateUser(u)
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", out.Email)
	assert.Equal(t, "Jane", out.FirstName)
	require.NotNil(t, out.LastName)
	assert.Equal(t, "Doe", *out.LastName)
	assert.Nil(t, out.City)
}

func TestValidateUser_DoesNotMutateInput(t *testing.T) {
	u := validUser()
	u.LastName = strPtr(" Doe ")

	_, err := ValidateUser(u)
	require.NoError(t, err)
	assert.Equal(t, " Doe ", *u.LastName)
	assert.Equal(t, Chapter(""), u.Chapter)
}

func TestValidateUser_Violations(t *testing.T) {
	tests := []struct {
		name   string
		modify func(u *User)
		field  string
	}{
		{"missing id", func(u *User) { u.ID = uuid.Nil }, "id"},
		{"missing email", func(u *User) { u.Email = "  " }, "email"},
		{"missing first name", func(u *User) { u.FirstName = "" }, "firstName"},
		{"unknown level", func(u *User) { l := Level("Pro"); u.Level = &l }, "level"},
		{"region without country", func(u *User) { u.Region = strPtr("California") }, "country"},
		{"unsupported country", func(u *User) {
			u.Region = strPtr("Bavaria")
			u.Country = strPtr("Germany")
		}, "country"},
		{"region outside country", func(u *User) {
			u.Region = strPtr("Atlantis")
			u.Country = strPtr(CountryUnitedStates)
		}, "region"},
		{"province in wrong country", func(u *User) {
			u.Region = strPtr("Ontario")
			u.Country = strPtr(CountryUnitedStates)
		}, "region"},
		{"unknown chapter", func(u *User) { u.Chapter = "Atlantis" }, "chapter"},
		{"unknown position", func(u *User) {
			u.Positions = []Position{{Name: "Captain", Started: date(2020, 1, 1)}}
		}, "positions.name"},
		{"position without start", func(u *User) {
			u.Positions = []Position{{Name: PositionPresident}}
		}, "positions.started"},
		{"position ends before start", func(u *User) {
			u.Positions = []Position{{Name: PositionPresident, Started: date(2020, 1, 1), Ended: date(2019, 1, 1)}}
		}, "positions.ended"},
		{"unknown status", func(u *User) { u.Status = "Suspended" }, "status"},
		{"unknown entered status", func(u *User) { u.EnteredInFacebookWki = "Maybe" }, "enteredInFacebookWki"},
		{"active paying without joined", func(u *User) {
			u.Status = StatusActivePaying
			u.RenewalDate = date(2021, 1, 1)
		}, "joinedDate"},
		{"active paying without renewal", func(u *User) {
			u.Status = StatusActivePaying
			u.JoinedDate = date(2020, 1, 1)
		}, "renewalDate"},
		{"terminated without terminated date", func(u *User) {
			u.Status = StatusTerminated
			u.JoinedDate = date(2020, 1, 1)
		}, "terminatedDate"},
		{"lifetime without joined", func(u *User) { u.Status = StatusLifetimeMember }, "joinedDate"},
		{"won surfboard without date", func(u *User) { u.WonSurfboard = true }, "dateSurfboardWon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.modify(&u)

			_, err := ValidateUser(u)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRecord)

			var rec *InvalidRecordError
			require.True(t, errors.As(err, &rec))
			assert.Equal(t, tt.field, rec.Field)
		})
	}
}

func TestValidateUser_FirstViolationWins(t *testing.T) {
	u := validUser()
	u.Email = ""
	u.FirstName = ""
	u.Chapter = "Atlantis"

	_, err := ValidateUser(u)
	var rec *InvalidRecordError
	require.True(t, errors.As(err, &rec))
	assert.Equal(t, "email", rec.Field)
}

func TestValidateUser_RegionCountry(t *testing.T) {
	u := validUser()
	u.Country = strPtr(CountryUnitedStates)
	u.Region = strPtr("California")
	_, err := ValidateUser(u)
	assert.NoError(t, err)

	u.Country = strPtr(CountryCanada)
	u.Region = strPtr("British Columbia")
	_, err = ValidateUser(u)
	assert.NoError(t, err)

	// country alone is free-form
	u.Region = nil
	u.Country = strPtr("Australia")
	_, err = ValidateUser(u)
	assert.NoError(t, err)
}

func TestValidateUser_StatusDates(t *testing.T) {
	joined := date(2020, 3, 1)
	renewal := date(2021, 3, 1)
	terminated := date(2022, 3, 1)

	tests := []struct {
		status                            MemberStatus
		wantJoined, wantRenewal, wantTerm bool
	}{
		{StatusPending, false, false, false},
		{StatusActivePaying, true, true, false},
		{StatusActiveNonPaying, true, false, false},
		{StatusLifetimeMember, true, false, false},
		{StatusTerminated, true, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			u := validUser()
			u.Status = tt.status
			u.JoinedDate = joined
			u.RenewalDate = renewal
			u.TerminatedDate = terminated

			out, err := ValidateUser(u)
			require.NoError(t, err)

			assert.Equal(t, tt.wantJoined, out.JoinedDate != nil, "joinedDate")
			assert.Equal(t, tt.wantRenewal, out.RenewalDate != nil, "renewalDate")
			assert.Equal(t, tt.wantTerm, out.TerminatedDate != nil, "terminatedDate")
		})
	}
}

func TestRulesFor_CoversEveryDate(t *testing.T) {
	all := []DateField{FieldJoinedDate, FieldRenewalDate, FieldTerminatedDate}
	for _, status := range MemberStatuses {
		rule := RulesFor(status)
		seen := map[DateField]int{}
		for _, f := range rule.Required {
			seen[f]++
		}
		for _, f := range rule.Cleared {
			seen[f]++
		}
		for _, f := range all {
			assert.Equal(t, 1, seen[f], "%s: %s", status, f)
		}
	}
}

func TestValidateUser_Idempotent(t *testing.T) {
	level := LevelAdvanced
	u := validUser()
	u.Email = " jane@example.com"
	u.LastName = strPtr(" Doe")
	u.Country = strPtr(CountryUnitedStates)
	u.Region = strPtr("Hawaii")
	u.Level = &level
	u.Status = StatusActivePaying
	joined := time.Date(2020, 3, 1, 15, 30, 0, 0, time.FixedZone("HST", -10*3600))
	u.JoinedDate = &joined
	u.RenewalDate = date(2021, 3, 1)
	u.TerminatedDate = date(2022, 1, 1)
	u.Positions = []Position{{Name: PositionChapterDirector, Started: date(2020, 1, 1)}}

	once, err := ValidateUser(u)
	require.NoError(t, err)
	twice, err := ValidateUser(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, *date(2020, 3, 1), *once.JoinedDate)
	assert.Nil(t, once.TerminatedDate)
}

func TestUserAge(t *testing.T) {
	u := validUser()
	assert.Nil(t, u.Age(time.Now()))

	u.Birthdate = date(1990, 6, 15)
	assert.Equal(t, 29, *u.Age(time.Date(2020, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, *u.Age(time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestUserWithAge_Serializes(t *testing.T) {
	u := validUser()
	u.Birthdate = date(1990, 6, 15)

	raw, err := json.Marshal(u.WithAge(time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(30), decoded["age"])
	assert.Equal(t, u.Email, decoded["email"])
	assert.Equal(t, u.FirstName, decoded["firstName"])

	raw, err = json.Marshal(validUser().WithAge(time.Now()))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"age"`)
}

func TestIsBusinessError(t *testing.T) {
	assert.True(t, IsBusinessError(invalid("email", "is required")))
	assert.True(t, IsBusinessError(ErrUserNotFound))
	assert.True(t, IsBusinessError(ErrCorruptRecord))
	assert.False(t, IsBusinessError(ErrStoreUnavailable))
	assert.False(t, IsBusinessError(ErrCancelled))
	assert.False(t, IsBusinessError(errors.New("timeout")))
}

func TestNewUser(t *testing.T) {
	ts := int64(42)
	draft := User{}
	draft.ID = uuid.New()
	draft.Timestamp = &ts

	u := NewUser(draft)
	assert.NotEqual(t, draft.ID, u.ID)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Nil(t, u.Timestamp)
	assert.Equal(t, StatusPending, u.Status)
}
