package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserBase is the identity tier shared by every view of a user
type UserBase struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Profile is the public tier a member may write about themselves
type Profile struct {
	UserBase
	FirstName      string     `json:"firstName"`
	LastName       *string    `json:"lastName,omitempty"`
	FacebookName   *string    `json:"facebookName,omitempty"`
	City           *string    `json:"city,omitempty"`
	Region         *string    `json:"region,omitempty"`
	PostalCode     *int       `json:"postalCode,omitempty"`
	Country        *string    `json:"country,omitempty"`
	Occupation     *string    `json:"occupation,omitempty"`
	Level          *Level     `json:"level,omitempty"`
	PhotoURL       *string    `json:"photoUrl,omitempty"`
	Biography      *string    `json:"biography,omitempty"`
	StartedSurfing *time.Time `json:"startedSurfing,omitempty"`
	Boards         []string   `json:"boards"`
	SurfSpots      []string   `json:"surfSpots"`
}

// Member is the tier readable by every member
type Member struct {
	Profile
	Positions []Position `json:"positions"`
	Chapter   Chapter    `json:"chapter"`
}

// User is the full administrative record persisted in the document store
type User struct {
	Member
	Admin                    bool          `json:"admin"`
	PayPalName               *string       `json:"payPalName,omitempty"`
	PhoneNumber              *string       `json:"phoneNumber,omitempty"`
	StreetAddress            *string       `json:"streetAddress,omitempty"`
	Birthdate                *time.Time    `json:"birthdate,omitempty"`
	Status                   MemberStatus  `json:"status"`
	JoinedDate               *time.Time    `json:"joinedDate,omitempty"`
	RenewalDate              *time.Time    `json:"renewalDate,omitempty"`
	TerminatedDate           *time.Time    `json:"terminatedDate,omitempty"`
	EnteredInFacebookChapter EnteredStatus `json:"enteredInFacebookChapter"`
	EnteredInFacebookWki     EnteredStatus `json:"enteredInFacebookWki"`
	NeedsNewMemberBag        bool          `json:"needsNewMemberBag"`
	WonSurfboard             bool          `json:"wonSurfboard"`
	DateSurfboardWon         *time.Time    `json:"dateSurfboardWon,omitempty"`
	SocialMediaOptOut        bool          `json:"socialMediaOptOut"`
	// Timestamp is assigned by the store and never written by callers
	Timestamp *int64 `json:"_ts,omitempty"`
}

// AdminRecord is the full record as served to admins and to the member themselves
type AdminRecord struct {
	User
	Age *int `json:"age,omitempty"`
}

// WithAge returns the full record with the member's age at now
func (u User) WithAge(now time.Time) AdminRecord {
	return AdminRecord{User: u, Age: u.Age(now)}
}

// NewUser turns a caller-supplied draft into a new record with a fresh id
func NewUser(draft User) User {
	u := draft.Clone()
	u.ID = uuid.New()
	u.Timestamp = nil
	if u.Status == "" {
		u.Status = StatusPending
	}
	return u
}

// Age returns the member's age in whole years at now, or nil without a birthdate
func (u User) Age(now time.Time) *int {
	if u.Birthdate == nil {
		return nil
	}
	birth := *u.Birthdate
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return &age
}

// Clone returns a deep copy of u
func (u User) Clone() User {
	out := u
	out.LastName = clonePtr(u.LastName)
	out.FacebookName = clonePtr(u.FacebookName)
	out.City = clonePtr(u.City)
	out.Region = clonePtr(u.Region)
	out.Country = clonePtr(u.Country)
	out.Occupation = clonePtr(u.Occupation)
	out.PhotoURL = clonePtr(u.PhotoURL)
	out.Biography = clonePtr(u.Biography)
	out.PayPalName = clonePtr(u.PayPalName)
	out.PhoneNumber = clonePtr(u.PhoneNumber)
	out.StreetAddress = clonePtr(u.StreetAddress)
	out.PostalCode = clonePtr(u.PostalCode)
	out.Level = clonePtr(u.Level)
	out.Timestamp = clonePtr(u.Timestamp)
	out.StartedSurfing = clonePtr(u.StartedSurfing)
	out.Birthdate = clonePtr(u.Birthdate)
	out.JoinedDate = clonePtr(u.JoinedDate)
	out.RenewalDate = clonePtr(u.RenewalDate)
	out.TerminatedDate = clonePtr(u.TerminatedDate)
	out.DateSurfboardWon = clonePtr(u.DateSurfboardWon)
	if u.Boards != nil {
		out.Boards = append([]string{}, u.Boards...)
	}
	if u.SurfSpots != nil {
		out.SurfSpots = append([]string{}, u.SurfSpots...)
	}
	if u.Positions != nil {
		out.Positions = make([]Position, len(u.Positions))
		for i, p := range u.Positions {
			out.Positions[i] = Position{
				Name:    p.Name,
				Started: clonePtr(p.Started),
				Ended:   clonePtr(p.Ended),
			}
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
