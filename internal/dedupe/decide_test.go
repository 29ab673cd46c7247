package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/matching"
	id "kinlead/pkg/domain"
)

// tableScorer scores by the person's first name.
type tableScorer struct {
	scores       map[string]float64
	disqualified map[string]bool
	policy       matching.Policy
}

func (s tableScorer) Score(_, b models.NormalizedRecord) matching.Result {
	return matching.Result{Score: s.scores[b.FirstName], Disqualified: s.disqualified[b.FirstName]}
}

func (s tableScorer) Policy() matching.Policy { return s.policy }

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func person(first string, createdAt time.Time) *models.Person {
	return &models.Person{ID: id.NewPersonID(), FirstName: first, LastName: "Schmidt", CreatedAt: createdAt}
}

func TestDecideBoundaries(t *testing.T) {
	policy := matching.DefaultPolicy()
	at := func(score float64) *Candidate {
		return &Candidate{Person: person("x", epoch), Result: matching.Result{Score: score}}
	}

	tests := []struct {
		name string
		best *Candidate
		want Action
	}{
		{"no candidate creates", nil, ActionCreated},
		{"exactly auto-merge merges", at(0.90), ActionMerged},
		{"above auto-merge merges", at(0.97), ActionMerged},
		{"just below auto-merge reviews", at(0.8999), ActionReview},
		{"exactly review floor reviews", at(0.70), ActionReview},
		{"below review band creates", at(0.6999), ActionCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.best, policy))
		})
	}

	t.Run("candidate under a lower match threshold still creates", func(t *testing.T) {
		loose := matching.Policy{NameMatchThreshold: 0.6, AutoMergeThreshold: 0.9, ManualReviewThreshold: 0.7, DateProximityYears: 2}
		assert.Equal(t, 0.6, loose.CandidateFloor())
		assert.Equal(t, ActionCreated, Decide(at(0.65), loose))
	})
}

func TestActionIsMerge(t *testing.T) {
	assert.False(t, ActionCreated.IsMerge())
	assert.True(t, ActionMerged.IsMerge())
	assert.True(t, ActionReview.IsMerge())
}

func TestRankCandidates(t *testing.T) {
	scorer := tableScorer{
		scores:       map[string]float64{"low": 0.5, "mid": 0.8, "high": 0.95, "banned": 0.99, "tieA": 0.8, "tieB": 0.8},
		disqualified: map[string]bool{"banned": true},
		policy:       matching.DefaultPolicy(),
	}

	t.Run("drops below floor and disqualified, best first", func(t *testing.T) {
		pool := []*models.Person{person("low", epoch), person("mid", epoch), person("banned", epoch), person("high", epoch)}
		ranked := RankCandidates(scorer, models.NormalizedRecord{}, pool, 0.70)
		require.Len(t, ranked, 2)
		assert.Equal(t, "high", ranked[0].Person.FirstName)
		assert.Equal(t, "mid", ranked[1].Person.FirstName)
	})

	t.Run("ties go to the older person", func(t *testing.T) {
		older := person("tieB", epoch)
		newer := person("tieA", epoch.Add(time.Hour))
		ranked := RankCandidates(scorer, models.NormalizedRecord{}, []*models.Person{newer, older}, 0.70)
		require.Len(t, ranked, 2)
		assert.Equal(t, older.ID, ranked[0].Person.ID)
	})

	t.Run("equal age ties go to the smaller id", func(t *testing.T) {
		a := person("tieA", epoch)
		b := person("tieB", epoch)
		want := a.ID
		if b.ID.String() < a.ID.String() {
			want = b.ID
		}
		for _, pool := range [][]*models.Person{{a, b}, {b, a}} {
			ranked := RankCandidates(scorer, models.NormalizedRecord{}, pool, 0.70)
			require.Len(t, ranked, 2)
			assert.Equal(t, want, ranked[0].Person.ID)
		}
	})

	t.Run("empty pool", func(t *testing.T) {
		assert.Empty(t, RankCandidates(scorer, models.NormalizedRecord{}, nil, 0.70))
	})
}

func TestBlockingSafe(t *testing.T) {
	assert.False(t, blockingSafe(0.70), "default floor can be reached without any date agreement")
	assert.False(t, blockingSafe(0.5))
	assert.True(t, blockingSafe(0.85))

	from, to := birthWindow(models.NewDate(1880, time.January, 15), 2)
	assert.Equal(t, "1878-01-15", from.String())
	assert.Equal(t, "1882-01-14", to.String())
}
