package dedupe

import (
	"kinlead/internal/genealogy/models"
	"kinlead/internal/matching"
)

// maxScoreWithoutDate is the best total a pair can reach when the date
// sub-score is zero, i.e. when the birth dates lie a full window apart.
const maxScoreWithoutDate = 1 - matching.DateWeight

// blockingSafe reports whether pruning the pool to a birth-date window can
// change no decision at the given floor. Persons with an unknown birth date
// are always kept, so only persons a full window away are pruned.
func blockingSafe(floor float64) bool {
	return floor > maxScoreWithoutDate
}

// birthWindow returns the inclusive range of birth dates that can still score
// above zero on date proximity.
func birthWindow(d models.Date, years int) (models.Date, models.Date) {
	days := years * 365
	return d.AddDays(-days), d.AddDays(days)
}
