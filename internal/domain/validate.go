package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidateUser checks every tier of u and returns a normalized copy.
// Rules run base, profile, member, admin and the first violation is returned.
// Running it on its own output yields the same record.
func ValidateUser(u User) (User, error) {
	out := u.Clone()
	if err := out.UserBase.Validate(); err != nil {
		return User{}, err
	}
	if err := out.Profile.Validate(); err != nil {
		return User{}, err
	}
	if err := out.Member.Validate(); err != nil {
		return User{}, err
	}
	if err := out.validateAdmin(); err != nil {
		return User{}, err
	}
	return out, nil
}

// Validate normalizes and checks the identity tier
func (b *UserBase) Validate() error {
	if b.ID == uuid.Nil {
		return invalid("id", "is required")
	}
	b.Email = strings.TrimSpace(b.Email)
	if b.Email == "" {
		return invalid("email", "is required")
	}
	return nil
}

// Validate normalizes and checks the public profile fields.
// It assumes the embedded base tier has already been checked.
func (p *Profile) Validate() error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	if p.FirstName == "" {
		return invalid("firstName", "is required")
	}

	for _, s := range []**string{
		&p.LastName, &p.FacebookName, &p.City, &p.Region,
		&p.Country, &p.Occupation, &p.PhotoURL, &p.Biography,
	} {
		*s = trimOptional(*s)
	}

	if p.Level != nil && !p.Level.IsValid() {
		return invalid("level", "must be a known level")
	}

	if p.Region != nil {
		if p.Country == nil {
			return invalid("country", "is required when region is set")
		}
		if !IsSupportedCountry(*p.Country) {
			return invalid("country", "must be a supported country")
		}
		if !IsValidRegion(*p.Country, *p.Region) {
			return invalid("region", "must be a region of "+*p.Country)
		}
	}

	p.StartedSurfing = dateOnly(p.StartedSurfing)
	if p.Boards == nil {
		p.Boards = []string{}
	}
	if p.SurfSpots == nil {
		p.SurfSpots = []string{}
	}
	return nil
}

// Validate normalizes and checks the member tier
func (m *Member) Validate() error {
	if m.Chapter == "" {
		m.Chapter = DefaultChapter
	}
	if !m.Chapter.IsValid() {
		return invalid("chapter", "must be a known chapter")
	}
	if m.Positions == nil {
		m.Positions = []Position{}
	}
	for i := range m.Positions {
		m.Positions[i].Started = dateOnly(m.Positions[i].Started)
		m.Positions[i].Ended = dateOnly(m.Positions[i].Ended)
		if err := m.Positions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (u *User) validateAdmin() error {
	if u.Status == "" {
		u.Status = StatusPending
	}
	if !u.Status.IsValid() {
		return invalid("status", "must be a known status")
	}

	if u.EnteredInFacebookChapter == "" {
		u.EnteredInFacebookChapter = EnteredStatusEntered
	}
	if !u.EnteredInFacebookChapter.IsValid() {
		return invalid("enteredInFacebookChapter", "must be a known entered status")
	}
	if u.EnteredInFacebookWki == "" {
		u.EnteredInFacebookWki = EnteredStatusNotEntered
	}
	if !u.EnteredInFacebookWki.IsValid() {
		return invalid("enteredInFacebookWki", "must be a known entered status")
	}

	for _, s := range []**string{&u.PayPalName, &u.PhoneNumber, &u.StreetAddress} {
		*s = trimOptional(*s)
	}
	for _, d := range []**time.Time{
		&u.Birthdate, &u.JoinedDate, &u.RenewalDate, &u.TerminatedDate, &u.DateSurfboardWon,
	} {
		*d = dateOnly(*d)
	}

	if err := u.applyStatusRule(); err != nil {
		return err
	}
	if u.WonSurfboard && u.DateSurfboardWon == nil {
		return invalid("dateSurfboardWon", "is required when wonSurfboard is set")
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// dateOnly drops the time of day so dates survive a JSON round trip unchanged
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}
