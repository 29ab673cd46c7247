package domain

import (
	"strings"

	dErrors "kinlead/pkg/domain-errors"
)

// SourceType identifies which kind of genealogical document a raw record came
// from. It selects the field mapping used by the normalizer.
//
// Usage: construct via ParseSourceType at trust boundaries; direct casting
// bypasses validation.
type SourceType string

const (
	SourceNaturalization SourceType = "naturalization"
	SourceImmigration    SourceType = "immigration"
	SourceCensus         SourceType = "census"
	SourceObituary       SourceType = "obituary"
	SourceBirth          SourceType = "birth"
)

var validSourceTypes = map[SourceType]bool{
	SourceNaturalization: true,
	SourceImmigration:    true,
	SourceCensus:         true,
	SourceObituary:       true,
	SourceBirth:          true,
}

// ParseSourceType constructs a SourceType from external input. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseSourceType(s string) (SourceType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "source type cannot be empty")
	}
	st := SourceType(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported source type: "+s)
	}
	return st, nil
}

// IsValid checks if the source type is one of the supported values.
func (s SourceType) IsValid() bool {
	return validSourceTypes[s]
}

func (s SourceType) String() string {
	return string(s)
}

// SourceTypes returns every supported source type in a stable order.
func SourceTypes() []SourceType {
	return []SourceType{SourceNaturalization, SourceImmigration, SourceCensus, SourceObituary, SourceBirth}
}
