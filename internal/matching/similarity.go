package matching

import (
	"slices"
	"strings"

	pstrings "kinlead/pkg/platform/strings"
)

// ratio is the normalized indel similarity of two strings in [0, 1]:
// 2*LCS / (len(a)+len(b)), measured in runes. Two empty strings are identical.
func ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return float64(2*lcsLength(ra, rb)) / float64(total)
}

func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// tokenSortRatio compares a and b after sorting their whitespace tokens, so
// "schmidt hans" and "hans schmidt" are identical.
func tokenSortRatio(a, b string) float64 {
	return ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// tokenSetRatio compares the token sets of a and b. When one set contains the
// other the result is 1. Otherwise it is the best ratio among the shared
// tokens and each side's shared-plus-unique tokens.
func tokenSetRatio(a, b string) float64 {
	setA := pstrings.DedupeAndTrim(strings.Fields(a))
	setB := pstrings.DedupeAndTrim(strings.Fields(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var sect, onlyA, onlyB []string
	for _, tok := range setA {
		if slices.Contains(setB, tok) {
			sect = append(sect, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for _, tok := range setB {
		if !slices.Contains(setA, tok) {
			onlyB = append(onlyB, tok)
		}
	}
	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 1
	}

	slices.Sort(sect)
	slices.Sort(onlyA)
	slices.Sort(onlyB)
	joinedSect := strings.Join(sect, " ")
	combinedA := joinTokens(joinedSect, strings.Join(onlyA, " "))
	combinedB := joinTokens(joinedSect, strings.Join(onlyB, " "))

	best := ratio(combinedA, combinedB)
	if joinedSect == "" {
		return best
	}
	return max(best, ratio(joinedSect, combinedA), ratio(joinedSect, combinedB))
}

func joinTokens(sect, rest string) string {
	if sect == "" {
		return rest
	}
	if rest == "" {
		return sect
	}
	return sect + " " + rest
}
