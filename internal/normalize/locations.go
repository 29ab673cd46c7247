package normalize

import (
	"strings"
)

// Location is a birth place split into up to three comma-separated parts.
type Location struct {
	City    string
	State   string
	Country string
}

// ParseLocation assigns the first three comma parts to city, state and
// country. Extra parts are ignored; missing parts stay empty.
func ParseLocation(raw string) Location {
	if strings.TrimSpace(raw) == "" {
		return Location{}
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	var loc Location
	loc.City = parts[0]
	if len(parts) > 1 {
		loc.State = parts[1]
	}
	if len(parts) > 2 {
		loc.Country = parts[2]
	}
	return loc
}

var countryHints = []struct {
	needles []string
	country string
}{
	{[]string{"Germany", "German"}, "Germany"},
	{[]string{"Austria"}, "Austria"},
	{[]string{"USA", "United States"}, "United States"},
}

// ExtractCountry recognises a few country spellings anywhere in raw and
// otherwise falls back to the last comma-separated part.
func ExtractCountry(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	for _, hint := range countryHints {
		for _, needle := range hint.needles {
			if strings.Contains(raw, needle) {
				return hint.country
			}
		}
	}
	parts := strings.Split(raw, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}
