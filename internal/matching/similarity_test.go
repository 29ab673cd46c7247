package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, ratio("schmidt", "schmidt"))
	assert.Equal(t, 1.0, ratio("", ""))
	assert.Equal(t, 0.0, ratio("schmidt", ""))
	assert.InDelta(t, 12.0/14.0, ratio("schmidt", "schmitt"), 1e-9)
	assert.InDelta(t, ratio("müller", "muller"), ratio("muller", "müller"), 1e-12)
	assert.InDelta(t, 10.0/12.0, ratio("müller", "muller"), 1e-9, "measured in runes")
}

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 1.0, tokenSortRatio("hans schmidt", "schmidt  hans"))
	assert.InDelta(t, 22.0/26.0, tokenSortRatio("hans schmidt", "johann schmidt"), 1e-9)
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"subset scores full", "hamburg, germany", "hamburg, prussia, germany", 1},
		{"identical", "bremen", "bremen", 1},
		{"disjoint", "a b", "c d", 2.0 / 6.0},
		{"empty side", "", "bremen", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tokenSetRatio(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tokenSetRatio(tt.a, tt.b), tokenSetRatio(tt.b, tt.a), 1e-12)
		})
	}

	t.Run("partial overlap uses best combination", func(t *testing.T) {
		got := tokenSetRatio("altona holstein", "altona hamburg")
		assert.Greater(t, got, ratio("altona holstein", "altona hamburg")-1e-9)
		assert.Less(t, got, 1.0)
	})
}
