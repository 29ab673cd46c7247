package matching

import (
	"math"
)

// Policy holds the configurable thresholds of the matcher. Weights are fixed
// and not part of the policy.
type Policy struct {
	// NameMatchThreshold is the default cut-off for IsMatch.
	NameMatchThreshold float64
	// AutoMergeThreshold is the score at or above which a merge needs no review.
	AutoMergeThreshold float64
	// ManualReviewThreshold is the inclusive lower bound of the review band,
	// which ends (exclusive) at AutoMergeThreshold.
	ManualReviewThreshold float64
	// DateProximityYears is the window over which birth-date similarity
	// decays linearly to zero.
	DateProximityYears int
}

// DefaultPolicy returns the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		NameMatchThreshold:    0.85,
		AutoMergeThreshold:    0.90,
		ManualReviewThreshold: 0.70,
		DateProximityYears:    2,
	}
}

// normalized replaces out-of-range values with defaults and keeps the review
// band from extending above the auto-merge threshold. The zero Policy stands
// for DefaultPolicy; inside a set policy a threshold of 0 and a window of 0
// years are honoured.
func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p == (Policy{}) {
		return d
	}

	if !validThreshold(p.NameMatchThreshold) {
		p.NameMatchThreshold = d.NameMatchThreshold
	}
	if !validThreshold(p.AutoMergeThreshold) {
		p.AutoMergeThreshold = d.AutoMergeThreshold
	}
	if !validThreshold(p.ManualReviewThreshold) {
		p.ManualReviewThreshold = d.ManualReviewThreshold
	}
	if p.ManualReviewThreshold > p.AutoMergeThreshold {
		p.ManualReviewThreshold = p.AutoMergeThreshold
	}
	if p.DateProximityYears < 0 {
		p.DateProximityYears = d.DateProximityYears
	}
	return p
}

func validThreshold(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// CandidateFloor is the lowest score that can still lead to a merge: the
// lower of the match threshold and the review band's lower bound.
func (p Policy) CandidateFloor() float64 {
	return min(p.NameMatchThreshold, p.ManualReviewThreshold)
}

// AutoMerges reports whether score is at or above the auto-merge threshold.
func (p Policy) AutoMerges(score float64) bool {
	return score >= p.AutoMergeThreshold
}

// InReviewBand reports whether score falls in [review, auto-merge).
func (p Policy) InReviewBand(score float64) bool {
	return score >= p.ManualReviewThreshold && score < p.AutoMergeThreshold
}
