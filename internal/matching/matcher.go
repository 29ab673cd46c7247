// Package matching scores how likely two normalized records describe the same
// person.
//
// This is pure domain logic - no I/O, no side effects. Every sub-score is
// symmetric, so Score(a, b) == Score(b, a) by construction.
package matching

import (
	"strings"

	"kinlead/internal/genealogy/models"
	pstrings "kinlead/pkg/platform/strings"
)

// Sub-score weights. They sum to 1.
const (
	NameWeight    = 0.40
	DateWeight    = 0.30
	PlaceWeight   = 0.20
	CountryWeight = 0.10
)

const (
	// surnameBoostThreshold is the strict surname similarity above which the
	// surname signal is blended into the name score.
	surnameBoostThreshold = 0.90
	surnameBoostWeight    = 0.30

	absentBoth = 1.0
	absentOne  = 0.5
)

// Result is one pairwise comparison.
type Result struct {
	Score     float64               `json:"score"`
	Breakdown models.ScoreBreakdown `json:"breakdown"`
	// Disqualified is set when both birth countries are known and differ.
	// Such a pair is never a match, whatever the total.
	Disqualified bool `json:"disqualified"`
}

// Matcher compares normalized records under an immutable Policy.
type Matcher struct {
	policy Policy
}

// New creates a Matcher. The zero Policy and out-of-range values fall back to
// DefaultPolicy.
func New(policy Policy) *Matcher {
	return &Matcher{policy: policy.normalized()}
}

// Policy returns the effective policy.
func (m *Matcher) Policy() Policy {
	return m.policy
}

// Score compares a and b.
func (m *Matcher) Score(a, b models.NormalizedRecord) Result {
	country, disqualified := countryAgreement(a.BirthCountry, b.BirthCountry)
	breakdown := models.ScoreBreakdown{
		Name:    nameSimilarity(a, b),
		Date:    m.DateProximity(a.BirthDate, b.BirthDate),
		Place:   placeSimilarity(a.BirthPlace, b.BirthPlace),
		Country: country,
	}
	return Result{
		Score:        weightedTotal(breakdown),
		Breakdown:    breakdown,
		Disqualified: disqualified,
	}
}

func weightedTotal(b models.ScoreBreakdown) float64 {
	return b.Name*NameWeight + b.Date*DateWeight + b.Place*PlaceWeight + b.Country*CountryWeight
}

// IsMatch applies the policy's match threshold.
func (m *Matcher) IsMatch(a, b models.NormalizedRecord) (bool, Result) {
	return m.MatchesAt(a, b, m.policy.NameMatchThreshold)
}

// MatchesAt applies an explicit threshold. A disqualified pair never matches.
func (m *Matcher) MatchesAt(a, b models.NormalizedRecord, threshold float64) (bool, Result) {
	res := m.Score(a, b)
	return !res.Disqualified && res.Score >= threshold, res
}

// ShouldAutoMerge reports whether score is at or above the auto-merge threshold.
func (m *Matcher) ShouldAutoMerge(score float64) bool {
	return m.policy.AutoMerges(score)
}

// ShouldReview reports whether score falls in [review, auto-merge).
func (m *Matcher) ShouldReview(score float64) bool {
	return m.policy.InReviewBand(score)
}

// DateProximity decays linearly from 1 at equal dates to 0 at the edge of the
// policy window. Unknown dates score 1 when both are unknown and 0.5 when one is.
func (m *Matcher) DateProximity(a, b models.Date) float64 {
	switch {
	case a.IsZero() && b.IsZero():
		return absentBoth
	case a.IsZero() || b.IsZero():
		return absentOne
	case a.Equal(b):
		return 1
	}
	maxDays := m.policy.DateProximityYears * 365
	diff := models.DaysBetween(a, b)
	if diff >= maxDays {
		return 0
	}
	return 1 - float64(diff)/float64(maxDays)
}

func nameSimilarity(a, b models.NormalizedRecord) float64 {
	fullA := pstrings.Fold(a.FullName())
	fullB := pstrings.Fold(b.FullName())
	if fullA == "" || fullB == "" {
		return 0
	}
	sim := tokenSortRatio(fullA, fullB)

	lastA := pstrings.Fold(a.LastName)
	lastB := pstrings.Fold(b.LastName)
	if lastA != "" && lastB != "" {
		if lastSim := ratio(lastA, lastB); lastSim > surnameBoostThreshold {
			sim = sim*(1-surnameBoostWeight) + lastSim*surnameBoostWeight
		}
	}
	return sim
}

func placeSimilarity(a, b string) float64 {
	foldA := pstrings.Fold(a)
	foldB := pstrings.Fold(b)
	switch {
	case foldA == "" && foldB == "":
		return absentBoth
	case foldA == "" || foldB == "":
		return absentOne
	case foldA == foldB:
		return 1
	}
	return tokenSetRatio(foldA, foldB)
}

// countryAgreement returns the country sub-score and whether the pair is
// disqualified by a known conflict.
func countryAgreement(a, b string) (float64, bool) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return absentOne, false
	}
	if pstrings.Fold(a) == pstrings.Fold(b) {
		return 1, false
	}
	return 0, true
}
