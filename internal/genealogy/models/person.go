package models

import (
	"slices"
	"strings"
	"time"

	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
	pstrings "kinlead/pkg/platform/strings"
)

// DefaultConfidenceScore is assigned to every newly created person.
const DefaultConfidenceScore = 100

// Person is the canonical representation of one believed-real individual.
//
// Invariants:
//   - ID is assigned at creation and never changes.
//   - Identity fields are fill-only: a non-empty field is never overwritten by
//     a later merge, whatever the incoming value.
//   - ConfidenceScore is within [0, 100].
//   - SourceRecordIDs holds each contributing raw record at most once.
type Person struct {
	ID              id.PersonID      `json:"id"`
	FirstName       string           `json:"first_name"`
	MiddleName      string           `json:"middle_name,omitempty"`
	LastName        string           `json:"last_name"`
	BirthDate       Date             `json:"birth_date,omitzero"`
	BirthPlace      string           `json:"birth_place,omitempty"`
	BirthCity       string           `json:"birth_city,omitempty"`
	BirthState      string           `json:"birth_state,omitempty"`
	BirthCountry    string           `json:"birth_country,omitempty"`
	DeathDate       Date             `json:"death_date,omitzero"`
	DeathPlace      string           `json:"death_place,omitempty"`
	Sex             string           `json:"sex,omitempty"`
	ConfidenceScore int              `json:"confidence_score"`
	SourceRecordIDs []id.RawRecordID `json:"source_record_ids"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NewPersonFromRecord creates a person by copying the identity fields of rec.
func NewPersonFromRecord(personID id.PersonID, rec NormalizedRecord, now time.Time) (*Person, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "person id required")
	}
	return &Person{
		ID:              personID,
		FirstName:       strings.TrimSpace(rec.FirstName),
		MiddleName:      strings.TrimSpace(rec.MiddleName),
		LastName:        strings.TrimSpace(rec.LastName),
		BirthDate:       rec.BirthDate,
		BirthPlace:      strings.TrimSpace(rec.BirthPlace),
		BirthCity:       strings.TrimSpace(rec.BirthCity),
		BirthState:      strings.TrimSpace(rec.BirthState),
		BirthCountry:    strings.TrimSpace(rec.BirthCountry),
		DeathDate:       rec.DeathDate,
		DeathPlace:      strings.TrimSpace(rec.DeathPlace),
		Sex:             strings.TrimSpace(rec.Sex),
		ConfidenceScore: DefaultConfidenceScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Record projects the person onto the attribute set the matcher compares.
func (p *Person) Record() NormalizedRecord {
	return NormalizedRecord{
		FirstName:    p.FirstName,
		MiddleName:   p.MiddleName,
		LastName:     p.LastName,
		BirthDate:    p.BirthDate,
		BirthPlace:   p.BirthPlace,
		BirthCity:    p.BirthCity,
		BirthState:   p.BirthState,
		BirthCountry: p.BirthCountry,
		DeathDate:    p.DeathDate,
		DeathPlace:   p.DeathPlace,
		Sex:          p.Sex,
	}
}

func (p *Person) FullName() string {
	return joinNonEmpty(p.FirstName, p.MiddleName, p.LastName)
}

// SourcesCount is the number of raw records linked to the person.
func (p *Person) SourcesCount() int {
	return len(p.SourceRecordIDs)
}

// HasSource reports whether recordID is already linked.
func (p *Person) HasSource(recordID id.RawRecordID) bool {
	return slices.Contains(p.SourceRecordIDs, recordID)
}

// Clone returns a deep copy so callers can derive a new value without aliasing.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	c := *p
	c.SourceRecordIDs = slices.Clone(p.SourceRecordIDs)
	return &c
}

// WithSource returns a copy with recordID linked. Linking twice is a no-op.
func (p *Person) WithSource(recordID id.RawRecordID) *Person {
	c := p.Clone()
	if !c.HasSource(recordID) {
		c.SourceRecordIDs = append(c.SourceRecordIDs, recordID)
	}
	return c
}

// IdentityKey is the uniqueness key stores enforce when the person is
// created. Two records with the same folded name, birth date and birth country
// collide. Stores keep the key from creation; later merges do not move it.
func (p *Person) IdentityKey() string {
	return IdentityKeyOf(p.Record())
}

// IdentityKeyOf computes the identity key for a record. Records missing a
// first name, last name or birth date have no key and are never unique.
func IdentityKeyOf(r NormalizedRecord) string {
	if pstrings.IsBlank(r.FirstName) || pstrings.IsBlank(r.LastName) || r.BirthDate.IsZero() {
		return ""
	}
	return strings.Join([]string{
		pstrings.Fold(r.FirstName),
		pstrings.Fold(r.LastName),
		r.BirthDate.String(),
		pstrings.Fold(r.BirthCountry),
	}, "|")
}
