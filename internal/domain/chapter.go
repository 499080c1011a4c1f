package domain

// Chapter is a named local chapter of the organization
type Chapter string

const (
	ChapterSanDiego               Chapter = "San Diego"
	ChapterOrangeCountyLosAngeles Chapter = "Orange County/Los Angeles"
	ChapterVenturaSantaBarbara    Chapter = "Ventura/Santa Barbara"
	ChapterSantaCruzSanFrancisco  Chapter = "Santa Cruz/San Francisco"
	ChapterOregon                 Chapter = "Oregon"
	ChapterWashington             Chapter = "Washington"
	ChapterHawaii                 Chapter = "Hawaii"
	ChapterNewEngland             Chapter = "New England"
	ChapterInternational          Chapter = "Wahine Kai International"
)

// DefaultChapter is assigned to records that do not name a chapter
const DefaultChapter = ChapterInternational

var Chapters = []Chapter{
	ChapterSanDiego,
	ChapterOrangeCountyLosAngeles,
	ChapterVenturaSantaBarbara,
	ChapterSantaCruzSanFrancisco,
	ChapterOregon,
	ChapterWashington,
	ChapterHawaii,
	ChapterNewEngland,
	ChapterInternational,
}

// IsValid reports whether c is a known chapter
func (c Chapter) IsValid() bool {
	for _, known := range Chapters {
		if c == known {
			return true
		}
	}
	return false
}
