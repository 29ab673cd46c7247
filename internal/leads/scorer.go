// Package leads scores canonical persons as citizenship-eligibility leads.
package leads

import (
	"kinlead/internal/genealogy/models"
)

// Point allocation. The sum is capped at MaxScore.
const (
	PointsQualifyingAncestor = 25
	PointsManySources        = 20
	PointsTwoSources         = 10
	PointsManyRelationships  = 15
	PointsFewRelationships   = 7
	PointsAddressKnown       = 15
	PointsSeveralAddresses   = 10
	PointsNoDeathDate        = 10
	PointsBirthDateKnown     = 5

	MaxScore = 100
)

// Confidence grades how well a lead is supported by evidence.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Facts is the context a person is scored in, gathered from the stores.
type Facts struct {
	HasQualifyingAncestor bool
	SourcesCount          int
	// RelationshipCount counts edges in either direction, of any type.
	RelationshipCount int
	AddressCount      int
}

// Breakdown is the scored lead.
type Breakdown struct {
	Total                 int        `json:"total"`
	HasQualifyingAncestor bool       `json:"has_qualifying_ancestor"`
	SourcesCount          int        `json:"sources_count"`
	Confidence            Confidence `json:"confidence"`
}

// Score applies the point table to p.
func Score(p *models.Person, f Facts) Breakdown {
	total := 0
	if f.HasQualifyingAncestor {
		total += PointsQualifyingAncestor
	}

	switch {
	case f.SourcesCount >= 3:
		total += PointsManySources
	case f.SourcesCount == 2:
		total += PointsTwoSources
	}

	switch {
	case f.RelationshipCount >= 3:
		total += PointsManyRelationships
	case f.RelationshipCount >= 1:
		total += PointsFewRelationships
	}

	if f.AddressCount >= 1 {
		total += PointsAddressKnown
	}
	if f.AddressCount > 1 {
		total += PointsSeveralAddresses
	}

	if p.DeathDate.IsZero() {
		total += PointsNoDeathDate
	}
	if !p.BirthDate.IsZero() {
		total += PointsBirthDateKnown
	}

	total = min(total, MaxScore)
	return Breakdown{
		Total:                 total,
		HasQualifyingAncestor: f.HasQualifyingAncestor,
		SourcesCount:          f.SourcesCount,
		Confidence:            Classify(total, f.SourcesCount),
	}
}

// Classify grades a total.
func Classify(total, sources int) Confidence {
	switch {
	case total >= 80 && sources >= 3:
		return ConfidenceHigh
	case total >= 60 && sources >= 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
