package normalize

import (
	"strconv"
	"strings"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
)

// Payload is one decoded raw source record.
type Payload map[string]any

// String returns the value at key as trimmed text. Numbers and booleans are
// formatted; nested objects and lists count as absent.
func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case interface{ String() string }:
		return strings.TrimSpace(v.String())
	}
	return ""
}

// Members returns the list stored at key as payloads, skipping entries that
// are not objects. ok is false when key is missing or not a list.
func (p Payload) Members(key string) ([]Payload, bool) {
	switch v := p[key].(type) {
	case []any:
		out := make([]Payload, 0, len(v))
		for _, item := range v {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, Payload(m))
			case Payload:
				out = append(out, m)
			}
		}
		return out, true
	case []map[string]any:
		out := make([]Payload, 0, len(v))
		for _, m := range v {
			out = append(out, Payload(m))
		}
		return out, true
	case []Payload:
		return v, true
	}
	return nil, false
}

// Normalize maps one raw payload to its normalized records. Census payloads
// expand to one record per household member. An unknown source type, or a
// census payload without a household_members list, yields no records.
func Normalize(sourceType id.SourceType, payload Payload) []models.NormalizedRecord {
	switch sourceType {
	case id.SourceNaturalization:
		return []models.NormalizedRecord{naturalization(payload)}
	case id.SourceImmigration:
		return []models.NormalizedRecord{immigration(payload)}
	case id.SourceCensus:
		return census(payload)
	case id.SourceObituary:
		return []models.NormalizedRecord{obituary(payload)}
	case id.SourceBirth:
		return []models.NormalizedRecord{birth(payload)}
	}
	return nil
}

func withName(rec models.NormalizedRecord, raw string) models.NormalizedRecord {
	name := ParseName(raw)
	rec.FirstName = name.First
	rec.MiddleName = name.Middle
	rec.LastName = name.Last
	return rec
}

func naturalization(p Payload) models.NormalizedRecord {
	birthPlace := p.String("birth_place")
	loc := ParseLocation(birthPlace)
	country := loc.Country
	if country == "" {
		country = p.String("former_nationality")
	}
	return withName(models.NormalizedRecord{
		SourceType:         id.SourceNaturalization,
		BirthDate:          DateValue(p["birth_date"]),
		BirthPlace:         birthPlace,
		BirthCity:          loc.City,
		BirthState:         loc.State,
		BirthCountry:       country,
		NaturalizationDate: DateValue(p["naturalization_date"]),
		Residence:          p.String("residence_at_naturalization"),
		SourceData:         p,
	}, p.String("petitioner_name"))
}

func immigration(p Payload) models.NormalizedRecord {
	birthPlace := p.String("birthplace")
	loc := ParseLocation(birthPlace)
	lastResidence := p.String("last_residence")
	return withName(models.NormalizedRecord{
		SourceType:   id.SourceImmigration,
		BirthDate:    DateValue(p["birth_date"]),
		BirthPlace:   birthPlace,
		BirthCity:    loc.City,
		BirthState:   loc.State,
		BirthCountry: ExtractCountry(lastResidence),
		Sex:          p.String("sex"),
		ArrivalDate:  DateValue(p["arrival_date"]),
		Residence:    lastResidence,
		SourceData:   p,
	}, p.String("passenger_name"))
}

func census(p Payload) []models.NormalizedRecord {
	members, ok := p.Members("household_members")
	if !ok {
		return nil
	}
	address := p.String("address")
	out := make([]models.NormalizedRecord, 0, len(members))
	for _, m := range members {
		birthPlace := m.String("birthplace")
		out = append(out, withName(models.NormalizedRecord{
			SourceType:   id.SourceCensus,
			BirthDate:    YearStartDate(m["birth_year"]),
			BirthPlace:   birthPlace,
			BirthCountry: ExtractCountry(birthPlace),
			Sex:          m.String("sex"),
			Residence:    address,
			SourceData:   m,
		}, m.String("name")))
	}
	return out
}

func obituary(p Payload) models.NormalizedRecord {
	birthPlace := p.String("birth_place")
	loc := ParseLocation(birthPlace)
	return withName(models.NormalizedRecord{
		SourceType:   id.SourceObituary,
		BirthDate:    DateValue(p["birth_date"]),
		BirthPlace:   birthPlace,
		BirthCity:    loc.City,
		BirthState:   loc.State,
		BirthCountry: loc.Country,
		DeathDate:    DateValue(p["death_date"]),
		DeathPlace:   p.String("death_place"),
		Residence:    p.String("last_residence"),
		SourceData:   p,
	}, p.String("deceased_name"))
}

func birth(p Payload) models.NormalizedRecord {
	return withName(models.NormalizedRecord{
		SourceType:       id.SourceBirth,
		BirthDate:        DateValue(p["birth_date"]),
		BirthPlace:       p.String("birth_place"),
		Sex:              p.String("sex"),
		FatherName:       p.String("father_name"),
		MotherName:       p.String("mother_name"),
		MotherMaidenName: p.String("mother_maiden_name"),
		SourceData:       p,
	}, p.String("child_name"))
}
