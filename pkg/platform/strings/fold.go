package strings

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CollapseWhitespace trims s and replaces every internal whitespace run with a
// single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold returns the caseless form of s for comparisons. Input is NFC-composed
// first so that "u" + combining diaeresis and "ü" fold to the same string.
// Folding is full Unicode case folding, so "ß" folds to "ss".
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(CollapseWhitespace(s)))
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FirstNonBlank returns the first value that is not blank, trimmed.
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
