package domain

import "time"

// PositionName is a leadership role a member can hold
type PositionName string

const (
	PositionPresident                  PositionName = "President"
	PositionVicePresident              PositionName = "Vice President"
	PositionVicePresidentOfEvents      PositionName = "Vice President of Events"
	PositionVicePresidentOfFinance     PositionName = "Vice President of Finance"
	PositionDirectorOfMarketing        PositionName = "Director of Marketing"
	PositionDirectorOfSocialMedia      PositionName = "Director of Social Media"
	PositionDirectorOfCommunityService PositionName = "Director of Community Services"
	PositionSurfMamaDirector           PositionName = "Surf Mama Director"
	PositionChapterDirector            PositionName = "Chapter Director"
	PositionChapterEventCoordinator    PositionName = "Chapter Event Coordinator"
	PositionMerchandiser               PositionName = "Merchandiser"
)

var PositionNames = []PositionName{
	PositionPresident,
	PositionVicePresident,
	PositionVicePresidentOfEvents,
	PositionVicePresidentOfFinance,
	PositionDirectorOfMarketing,
	PositionDirectorOfSocialMedia,
	PositionDirectorOfCommunityService,
	PositionSurfMamaDirector,
	PositionChapterDirector,
	PositionChapterEventCoordinator,
	PositionMerchandiser,
}

// IsValid reports whether p is a known position
func (p PositionName) IsValid() bool {
	for _, known := range PositionNames {
		if p == known {
			return true
		}
	}
	return false
}

// Position is a role held by a member. It has no identity outside its member.
type Position struct {
	Name    PositionName `json:"name"`
	Started *time.Time   `json:"started,omitempty"`
	Ended   *time.Time   `json:"ended,omitempty"`
}

// Validate checks a single position
func (p Position) Validate() error {
	if !p.Name.IsValid() {
		return invalid("positions.name", "must be a known position")
	}
	if p.Started == nil {
		return invalid("positions.started", "is required")
	}
	if p.Ended != nil && p.Ended.Before(*p.Started) {
		return invalid("positions.ended", "must not be before started")
	}
	return nil
}
