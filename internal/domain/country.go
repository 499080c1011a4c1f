package domain

const (
	CountryCanada       = "Canada"
	CountryUnitedStates = "United States"
)

// countryRegions is the closed reference table of regions per supported country
var countryRegions = map[string]map[string]struct{}{
	CountryCanada: regionSet(
		"Alberta",
		"British Columbia",
		"Manitoba",
		"New Brunswick",
		"Newfoundland and Labrador",
		"Northwest Territories",
		"Nova Scotia",
		"Nunavut",
		"Ontario",
		"Prince Edward Island",
		"Quebec",
		"Saskatchewan",
		"Yukon",
	),
	CountryUnitedStates: regionSet(
		"Alabama", "Alaska", "Arizona", "Arkansas", "California",
		"Colorado", "Connecticut", "Delaware", "Florida", "Georgia",
		"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
		"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland",
		"Massachusetts", "Michigan", "Minnesota", "Mississippi", "Missouri",
		"Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey",
		"New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
		"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina",
		"South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
		"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
		"District of Columbia",
		"American Samoa",
		"Guam",
		"Northern Mariana Islands",
		"Puerto Rico",
		"United States Virgin Islands",
	),
}

func regionSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// IsSupportedCountry reports whether country has a region table
func IsSupportedCountry(country string) bool {
	_, ok := countryRegions[country]
	return ok
}

// IsValidRegion reports whether region belongs to country's region set
func IsValidRegion(country, region string) bool {
	regions, ok := countryRegions[country]
	if !ok {
		return false
	}
	_, ok = regions[region]
	return ok
}
