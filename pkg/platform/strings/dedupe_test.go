package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  foo  ", "bar  ", "  baz"},
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"foo", "bar", "foo", "baz", "bar"},
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"foo", "", "  ", "bar"},
			expected: []string{"foo", "bar"},
		},
		{
			name:     "preserves case",
			input:    []string{"Foo", "foo", "FOO"},
			expected: []string{"Foo", "foo", "FOO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrim(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, SplitList(" broker-1:9092,broker-2:9092,, broker-1:9092"))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "Hans Friedrich Schmidt", CollapseWhitespace("  Hans \t Friedrich\n Schmidt "))
	assert.Equal(t, "", CollapseWhitespace(" \t "))
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"case", "SCHMIDT", "schmidt"},
		{"sharp s", "Straße", "STRASSE"},
		{"decomposed umlaut", "Mu\u0308ller", "MÜLLER"},
		{"whitespace", " Hans   Schmidt ", "hans schmidt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Fold(tt.a), Fold(tt.b))
		})
	}
}

func TestFirstNonBlank(t *testing.T) {
	assert.Equal(t, "Berlin", FirstNonBlank("", "  ", " Berlin ", "Hamburg"))
	assert.Equal(t, "", FirstNonBlank("", " "))
	assert.True(t, IsBlank(" \n"))
}
