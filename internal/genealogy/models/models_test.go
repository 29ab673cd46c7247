package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
)

var fixedNow = time.Date(2024, time.May, 4, 10, 0, 0, 0, time.UTC)

func TestDate(t *testing.T) {
	t.Run("zero value is absent", func(t *testing.T) {
		var d Date
		assert.True(t, d.IsZero())
		assert.Equal(t, "", d.String())
	})

	t.Run("iso round trip", func(t *testing.T) {
		d, ok := ParseISODate("1880-03-15")
		require.True(t, ok)
		assert.Equal(t, NewDate(1880, time.March, 15), d)
		assert.Equal(t, "1880-03-15", d.String())
	})

	t.Run("rejects non iso", func(t *testing.T) {
		_, ok := ParseISODate("15 March 1880")
		assert.False(t, ok)
	})

	t.Run("days between is absolute", func(t *testing.T) {
		a := NewDate(1880, time.January, 15)
		b := NewDate(1881, time.July, 15)
		assert.Equal(t, 547, DaysBetween(a, b))
		assert.Equal(t, 547, DaysBetween(b, a))
	})

	t.Run("json omits absent dates", func(t *testing.T) {
		out, err := json.Marshal(NormalizedRecord{FirstName: "Hans", BirthDate: NewDate(1880, time.March, 15)})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"birth_date":"1880-03-15"`)
		assert.NotContains(t, string(out), "death_date")

		var decoded NormalizedRecord
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.True(t, decoded.BirthDate.Equal(NewDate(1880, time.March, 15)))
	})
}

func TestNewPersonFromRecord(t *testing.T) {
	rec := NormalizedRecord{
		FirstName:    "Hans",
		MiddleName:   "Friedrich",
		LastName:     "Schmidt",
		BirthDate:    NewDate(1880, time.March, 15),
		BirthCountry: "Germany",
		Residence:    "12 Elm St, Chicago, Illinois",
	}

	t.Run("copies identity fields with default confidence", func(t *testing.T) {
		p, err := NewPersonFromRecord(id.NewPersonID(), rec, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "Hans Friedrich Schmidt", p.FullName())
		assert.Equal(t, DefaultConfidenceScore, p.ConfidenceScore)
		assert.Equal(t, fixedNow, p.CreatedAt)
		assert.Empty(t, p.SourceRecordIDs)
	})

	t.Run("rejects nil id", func(t *testing.T) {
		_, err := NewPersonFromRecord(id.PersonID{}, rec, fixedNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestPersonWithSource(t *testing.T) {
	p, err := NewPersonFromRecord(id.NewPersonID(), NormalizedRecord{FirstName: "Anna"}, fixedNow)
	require.NoError(t, err)
	recordID := id.NewRawRecordID()

	linked := p.WithSource(recordID)
	assert.Equal(t, 1, linked.SourcesCount())
	assert.Equal(t, 0, p.SourcesCount(), "original value is not aliased")

	again := linked.WithSource(recordID)
	assert.Equal(t, 1, again.SourcesCount(), "linking the same record twice is a no-op")
}

func TestIdentityKeyFoldsCase(t *testing.T) {
	a := NormalizedRecord{FirstName: "HANS", LastName: "Schmidt", BirthDate: NewDate(1880, 3, 15), BirthCountry: "germany"}
	b := NormalizedRecord{FirstName: "hans", LastName: "SCHMIDT", BirthDate: NewDate(1880, 3, 15), BirthCountry: "Germany"}
	assert.Equal(t, IdentityKeyOf(a), IdentityKeyOf(b))

	b.BirthCountry = "Poland"
	assert.NotEqual(t, IdentityKeyOf(a), IdentityKeyOf(b))
}

func TestIdentityKeyRequiresNameAndBirthDate(t *testing.T) {
	assert.Empty(t, IdentityKeyOf(NormalizedRecord{}))
	assert.Empty(t, IdentityKeyOf(NormalizedRecord{FirstName: "Hans", LastName: "Schmidt"}))
	assert.Empty(t, IdentityKeyOf(NormalizedRecord{LastName: "Schmidt", BirthDate: NewDate(1880, 3, 15)}))
	assert.NotEmpty(t, IdentityKeyOf(NormalizedRecord{FirstName: "Hans", LastName: "Schmidt", BirthDate: NewDate(1880, 3, 15)}))
}

func TestMatchCandidateReview(t *testing.T) {
	newCandidate := func() *MatchCandidate {
		return NewMatchCandidate(id.NewPersonID(), id.NewRawRecordID(), 0.78, ScoreBreakdown{Name: 1}, fixedNow)
	}

	t.Run("starts pending with both sides on the merged person", func(t *testing.T) {
		c := newCandidate()
		assert.True(t, c.IsPending())
		assert.Equal(t, c.PersonA, c.PersonB)
	})

	t.Run("confirm from pending", func(t *testing.T) {
		c := newCandidate()
		require.NoError(t, c.Confirm(fixedNow))
		assert.Equal(t, CandidateConfirmed, c.Status)
		require.NotNil(t, c.ReviewedAt)
	})

	t.Run("cannot review twice", func(t *testing.T) {
		c := newCandidate()
		require.NoError(t, c.Reject(fixedNow))
		err := c.Confirm(fixedNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.Equal(t, CandidateRejected, c.Status)
	})
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Address
		ok   bool
	}{
		{"blank", "   ", Address{}, false},
		{"street only", "12 Elm St", Address{Street: "12 Elm St", FullAddress: "12 Elm St"}, true},
		{
			"street city state",
			" 12 Elm St, Chicago , Illinois, USA",
			Address{Street: "12 Elm St", City: "Chicago", State: "Illinois", FullAddress: "12 Elm St, Chicago , Illinois, USA"},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAddress(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelationshipType(t *testing.T) {
	assert.True(t, RelationshipParent.IsValid())
	assert.False(t, RelationshipType("cousin").IsValid())
}
