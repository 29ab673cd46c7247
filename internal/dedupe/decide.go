package dedupe

import (
	"cmp"
	"slices"
	"strings"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/matching"
)

// Action is what resolving one record did to the pool.
type Action string

const (
	ActionCreated Action = "created"
	ActionMerged  Action = "merged"
	// ActionReview is a merge that also produced a pending MatchCandidate.
	ActionReview Action = "review"
)

// IsMerge reports whether the record was folded into an existing person.
func (a Action) IsMerge() bool {
	return a == ActionMerged || a == ActionReview
}

// Candidate is a pool member that cleared the candidate floor.
type Candidate struct {
	Person *models.Person
	Result matching.Result
}

// RankCandidates scores rec against every person in pool and returns those at
// or above floor, best first. Disqualified pairs are dropped whatever their
// score. Ties go to the older person, then to the smaller id.
func RankCandidates(scorer Scorer, rec models.NormalizedRecord, pool []*models.Person, floor float64) []Candidate {
	var ranked []Candidate
	for _, p := range pool {
		res := scorer.Score(rec, p.Record())
		if res.Disqualified || res.Score < floor {
			continue
		}
		ranked = append(ranked, Candidate{Person: p, Result: res})
	}
	slices.SortFunc(ranked, compareCandidates)
	return ranked
}

func compareCandidates(a, b Candidate) int {
	if c := cmp.Compare(b.Result.Score, a.Result.Score); c != 0 {
		return c
	}
	if c := a.Person.CreatedAt.Compare(b.Person.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.Person.ID.String(), b.Person.ID.String())
}

// Decide maps the best candidate onto an action. best is nil when nothing
// cleared the floor. A candidate below the review band creates a new person.
func Decide(best *Candidate, policy matching.Policy) Action {
	switch {
	case best == nil:
		return ActionCreated
	case policy.AutoMerges(best.Result.Score):
		return ActionMerged
	case policy.InReviewBand(best.Result.Score):
		return ActionReview
	default:
		return ActionCreated
	}
}
