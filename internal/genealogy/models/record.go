package models

import (
	"strings"

	id "kinlead/pkg/domain"
)

// NormalizedRecord is the canonical attribute set extracted from one raw
// source record. It is transient: produced by the normalizer and consumed
// immediately by the deduplicator.
type NormalizedRecord struct {
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	BirthDate    Date   `json:"birth_date,omitzero"`
	BirthPlace   string `json:"birth_place,omitempty"`
	BirthCity    string `json:"birth_city,omitempty"`
	BirthState   string `json:"birth_state,omitempty"`
	BirthCountry string `json:"birth_country,omitempty"`
	DeathDate    Date   `json:"death_date,omitzero"`
	DeathPlace   string `json:"death_place,omitempty"`
	Sex          string `json:"sex,omitempty"`

	// Auxiliary fields. They never take part in matching.
	Residence          string `json:"residence,omitempty"`
	NaturalizationDate Date   `json:"naturalization_date,omitzero"`
	ArrivalDate        Date   `json:"arrival_date,omitzero"`
	FatherName         string `json:"father_name,omitempty"`
	MotherName         string `json:"mother_name,omitempty"`
	MotherMaidenName   string `json:"mother_maiden_name,omitempty"`

	SourceType id.SourceType  `json:"source_type"`
	SourceData map[string]any `json:"source_data,omitempty"`
}

// FullName joins the non-empty name parts with single spaces.
func (r NormalizedRecord) FullName() string {
	return joinNonEmpty(r.FirstName, r.MiddleName, r.LastName)
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
