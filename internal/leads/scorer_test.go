package leads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kinlead/internal/genealogy/models"
)

func TestScore(t *testing.T) {
	born := models.NewDate(1885, time.March, 2)
	died := models.NewDate(1950, time.July, 9)

	tests := []struct {
		name       string
		person     models.Person
		facts      Facts
		total      int
		confidence Confidence
	}{
		{
			name:       "single source with qualifying ancestor",
			person:     models.Person{BirthDate: born},
			facts:      Facts{HasQualifyingAncestor: true, SourcesCount: 1},
			total:      40,
			confidence: ConfidenceLow,
		},
		{
			name:       "fully supported lead reaches the maximum",
			person:     models.Person{BirthDate: born},
			facts:      Facts{HasQualifyingAncestor: true, SourcesCount: 3, RelationshipCount: 3, AddressCount: 2},
			total:      100,
			confidence: ConfidenceHigh,
		},
		{
			name:       "two sources and a known death",
			person:     models.Person{BirthDate: born, DeathDate: died},
			facts:      Facts{HasQualifyingAncestor: true, SourcesCount: 2, RelationshipCount: 1, AddressCount: 1},
			total:      62,
			confidence: ConfidenceMedium,
		},
		{
			name:       "no ancestor and nothing known",
			person:     models.Person{DeathDate: died},
			facts:      Facts{},
			total:      0,
			confidence: ConfidenceLow,
		},
		{
			name:       "many sources without ancestor",
			person:     models.Person{BirthDate: born},
			facts:      Facts{SourcesCount: 4, RelationshipCount: 5, AddressCount: 3},
			total:      75,
			confidence: ConfidenceMedium,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&tt.person, tt.facts)
			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, tt.facts.HasQualifyingAncestor, got.HasQualifyingAncestor)
			assert.Equal(t, tt.facts.SourcesCount, got.SourcesCount)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		total, sources int
		want           Confidence
	}{
		{80, 3, ConfidenceHigh},
		{100, 5, ConfidenceHigh},
		{79, 3, ConfidenceMedium},
		{80, 2, ConfidenceMedium},
		{60, 2, ConfidenceMedium},
		{59, 2, ConfidenceLow},
		{95, 1, ConfidenceLow},
		{0, 0, ConfidenceLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.total, tt.sources), "total=%d sources=%d", tt.total, tt.sources)
	}
}

func TestPolicyNormalized(t *testing.T) {
	p := Policy{QualifyingCountry: "  "}.normalized()
	assert.Equal(t, DefaultPolicy(), p)

	p = Policy{QualifyingCountry: " Italy ", ListConcurrency: 2}.normalized()
	assert.Equal(t, "Italy", p.QualifyingCountry)
	assert.Equal(t, 2, p.ListConcurrency)
}
