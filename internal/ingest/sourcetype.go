package ingest

import (
	"path/filepath"
	"strings"

	id "kinlead/pkg/domain"
)

var sourceKeywords = []struct {
	keywords   []string
	sourceType id.SourceType
}{
	{[]string{"natur", "petition"}, id.SourceNaturalization},
	{[]string{"passenger", "manifest", "immig"}, id.SourceImmigration},
	{[]string{"census"}, id.SourceCensus},
	{[]string{"obit"}, id.SourceObituary},
	{[]string{"birth"}, id.SourceBirth},
}

// InferSourceType guesses the source type from a file name. The first
// matching keyword group wins; ok is false when nothing matches.
func InferSourceType(fileName string) (id.SourceType, bool) {
	name := strings.ToLower(filepath.Base(fileName))
	for _, group := range sourceKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(name, kw) {
				return group.sourceType, true
			}
		}
	}
	return "", false
}
