package domain

import (
	"strings"
	"time"
)

// UserPatch is a partial update. Nil fields keep the stored value, with the
// exception of the status-derived dates and boolean flags, which are always
// taken as given.
type UserPatch struct {
	Email          *string     `json:"email,omitempty"`
	FirstName      *string     `json:"firstName,omitempty"`
	LastName       *string     `json:"lastName,omitempty"`
	FacebookName   *string     `json:"facebookName,omitempty"`
	City           *string     `json:"city,omitempty"`
	Region         *string     `json:"region,omitempty"`
	PostalCode     *int        `json:"postalCode,omitempty"`
	Country        *string     `json:"country,omitempty"`
	Occupation     *string     `json:"occupation,omitempty"`
	Level          *Level      `json:"level,omitempty"`
	PhotoURL       *string     `json:"photoUrl,omitempty"`
	Biography      *string     `json:"biography,omitempty"`
	StartedSurfing *time.Time  `json:"startedSurfing,omitempty"`
	Boards         *[]string   `json:"boards,omitempty"`
	SurfSpots      *[]string   `json:"surfSpots,omitempty"`
	Positions      *[]Position `json:"positions,omitempty"`
	Chapter        Chapter     `json:"chapter,omitempty"`

	Admin                    bool           `json:"admin"`
	PayPalName               *string        `json:"payPalName,omitempty"`
	PhoneNumber              *string        `json:"phoneNumber,omitempty"`
	StreetAddress            *string        `json:"streetAddress,omitempty"`
	Birthdate                *time.Time     `json:"birthdate,omitempty"`
	Status                   MemberStatus   `json:"status,omitempty"`
	JoinedDate               *time.Time     `json:"joinedDate,omitempty"`
	RenewalDate              *time.Time     `json:"renewalDate,omitempty"`
	TerminatedDate           *time.Time     `json:"terminatedDate,omitempty"`
	EnteredInFacebookChapter *EnteredStatus `json:"enteredInFacebookChapter,omitempty"`
	EnteredInFacebookWki     *EnteredStatus `json:"enteredInFacebookWki,omitempty"`
	NeedsNewMemberBag        bool           `json:"needsNewMemberBag"`
	WonSurfboard             bool           `json:"wonSurfboard"`
	DateSurfboardWon         *time.Time     `json:"dateSurfboardWon,omitempty"`
	SocialMediaOptOut        bool           `json:"socialMediaOptOut"`
}

// PatchFromUser builds a patch that sets every field of u
func PatchFromUser(u User) UserPatch {
	c := u.Clone()
	return UserPatch{
		Email:                    &c.Email,
		FirstName:                &c.FirstName,
		LastName:                 c.LastName,
		FacebookName:             c.FacebookName,
		City:                     c.City,
		Region:                   c.Region,
		PostalCode:               c.PostalCode,
		Country:                  c.Country,
		Occupation:               c.Occupation,
		Level:                    c.Level,
		PhotoURL:                 c.PhotoURL,
		Biography:                c.Biography,
		StartedSurfing:           c.StartedSurfing,
		Boards:                   &c.Boards,
		SurfSpots:                &c.SurfSpots,
		Positions:                &c.Positions,
		Chapter:                  c.Chapter,
		Admin:                    c.Admin,
		PayPalName:               c.PayPalName,
		PhoneNumber:              c.PhoneNumber,
		StreetAddress:            c.StreetAddress,
		Birthdate:                c.Birthdate,
		Status:                   c.Status,
		JoinedDate:               c.JoinedDate,
		RenewalDate:              c.RenewalDate,
		TerminatedDate:           c.TerminatedDate,
		EnteredInFacebookChapter: &c.EnteredInFacebookChapter,
		EnteredInFacebookWki:     &c.EnteredInFacebookWki,
		NeedsNewMemberBag:        c.NeedsNewMemberBag,
		WonSurfboard:             c.WonSurfboard,
		DateSurfboardWon:         c.DateSurfboardWon,
		SocialMediaOptOut:        c.SocialMediaOptOut,
	}
}

// ValidatePatch rejects a patch whose set fields could never produce a valid record
func ValidatePatch(p UserPatch) error {
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		return invalid("email", "must not be blank")
	}
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return invalid("firstName", "must not be blank")
	}
	if p.Level != nil && !p.Level.IsValid() {
		return invalid("level", "must be a known level")
	}
	if p.Chapter != "" && !p.Chapter.IsValid() {
		return invalid("chapter", "must be a known chapter")
	}
	if p.Status != "" && !p.Status.IsValid() {
		return invalid("status", "must be a known status")
	}
	if p.EnteredInFacebookChapter != nil && !p.EnteredInFacebookChapter.IsValid() {
		return invalid("enteredInFacebookChapter", "must be a known entered status")
	}
	if p.EnteredInFacebookWki != nil && !p.EnteredInFacebookWki.IsValid() {
		return invalid("enteredInFacebookWki", "must be a known entered status")
	}
	if p.Positions != nil {
		for _, pos := range *p.Positions {
			if err := pos.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// PatchEmail returns the trimmed email a patch sets, if any
func (p UserPatch) PatchEmail() (string, bool) {
	if p.Email == nil {
		return "", false
	}
	return strings.TrimSpace(*p.Email), true
}

// ApplyPatch merges p over existing and returns the result without validating it.
// The id and store timestamp of existing are never changed.
func ApplyPatch(existing User, p UserPatch) User {
	u := existing.Clone()

	keep(&u.Email, p.Email)
	keep(&u.FirstName, p.FirstName)
	keepPtr(&u.LastName, p.LastName)
	keepPtr(&u.FacebookName, p.FacebookName)
	keepPtr(&u.City, p.City)
	keepPtr(&u.Region, p.Region)
	keepPtr(&u.PostalCode, p.PostalCode)
	keepPtr(&u.Country, p.Country)
	keepPtr(&u.Occupation, p.Occupation)
	keepPtr(&u.Level, p.Level)
	keepPtr(&u.PhotoURL, p.PhotoURL)
	keepPtr(&u.Biography, p.Biography)
	keepPtr(&u.StartedSurfing, p.StartedSurfing)
	if p.Boards != nil {
		u.Boards = append([]string{}, (*p.Boards)...)
	}
	if p.SurfSpots != nil {
		u.SurfSpots = append([]string{}, (*p.SurfSpots)...)
	}
	if p.Positions != nil {
		u.Positions = make([]Position, len(*p.Positions))
		for i, pos := range *p.Positions {
			u.Positions[i] = Position{Name: pos.Name, Started: clonePtr(pos.Started), Ended: clonePtr(pos.Ended)}
		}
	}
	if p.Chapter != "" {
		u.Chapter = p.Chapter
	}

	keepPtr(&u.PayPalName, p.PayPalName)
	keepPtr(&u.PhoneNumber, p.PhoneNumber)
	keepPtr(&u.StreetAddress, p.StreetAddress)
	keepPtr(&u.Birthdate, p.Birthdate)
	if p.Status != "" {
		u.Status = p.Status
	}
	keep(&u.EnteredInFacebookChapter, p.EnteredInFacebookChapter)
	keep(&u.EnteredInFacebookWki, p.EnteredInFacebookWki)
	keepPtr(&u.DateSurfboardWon, p.DateSurfboardWon)

	// taken verbatim, nil clears
	u.JoinedDate = clonePtr(p.JoinedDate)
	u.RenewalDate = clonePtr(p.RenewalDate)
	u.TerminatedDate = clonePtr(p.TerminatedDate)
	u.Admin = p.Admin
	u.NeedsNewMemberBag = p.NeedsNewMemberBag
	u.WonSurfboard = p.WonSurfboard
	u.SocialMediaOptOut = p.SocialMediaOptOut

	return u
}

func keep[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func keepPtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = clonePtr(src)
	}
}
