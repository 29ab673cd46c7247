package dedupe

import (
	"strings"

	"kinlead/internal/genealogy/models"
	pstrings "kinlead/pkg/platform/strings"
)

// Merge returns a copy of existing with every absent identity field filled
// from incoming. A field that is already set never changes, whatever the
// incoming value. existing is left untouched.
func Merge(existing *models.Person, incoming models.NormalizedRecord) *models.Person {
	merged := existing.Clone()

	fillString(&merged.FirstName, incoming.FirstName)
	fillString(&merged.MiddleName, incoming.MiddleName)
	fillString(&merged.LastName, incoming.LastName)
	fillDate(&merged.BirthDate, incoming.BirthDate)
	fillString(&merged.BirthPlace, incoming.BirthPlace)
	fillString(&merged.BirthCity, incoming.BirthCity)
	fillString(&merged.BirthState, incoming.BirthState)
	fillString(&merged.BirthCountry, incoming.BirthCountry)
	fillDate(&merged.DeathDate, incoming.DeathDate)
	fillString(&merged.DeathPlace, incoming.DeathPlace)
	fillString(&merged.Sex, incoming.Sex)

	return merged
}

func fillString(dst *string, v string) {
	if pstrings.IsBlank(*dst) && !pstrings.IsBlank(v) {
		*dst = strings.TrimSpace(v)
	}
}

func fillDate(dst *models.Date, v models.Date) {
	if dst.IsZero() && !v.IsZero() {
		*dst = v
	}
}
