package normalize

import (
	"strings"

	pstrings "kinlead/pkg/platform/strings"
)

// NameParts is a personal name split into its canonical parts.
type NameParts struct {
	First  string
	Middle string
	Last   string
}

// ParseName splits a full name. "Last, First Middle..." is recognised by the
// comma; otherwise the final token is the surname. A single token is taken as
// the first name.
func ParseName(raw string) NameParts {
	name := pstrings.CollapseWhitespace(raw)
	if name == "" {
		return NameParts{}
	}

	var last string
	var given []string
	if before, after, found := strings.Cut(name, ","); found {
		last = strings.TrimSpace(before)
		given = strings.Fields(after)
	} else {
		tokens := strings.Fields(name)
		if len(tokens) == 1 {
			return NameParts{First: tokens[0]}
		}
		last = tokens[len(tokens)-1]
		given = tokens[:len(tokens)-1]
	}

	parts := NameParts{Last: last}
	if len(given) > 0 {
		parts.First = given[0]
	}
	if len(given) > 1 {
		parts.Middle = strings.Join(given[1:], " ")
	}
	return parts
}
