package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"filters short tokens", "What is renewable energy?", []string{"what", "renewable", "energy"}},
		{"strips punctuation", "Solar, wind! Tides.", []string{"solar", "wind", "tides"}},
		{"falls back to all tokens", "is it ok", []string{"is", "it", "ok"}},
		{"keeps duplicates", "energy and energy", []string{"energy", "energy"}},
		{"counts runes not bytes", "Über öl", []string{"über"}},
		{"keeps parentheses", "value of f(x)", []string{"value", "f(x)"}},
		{"only punctuation", "?!", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractKeywords(tc.query)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRelevanceUsesListSemantics(t *testing.T) {
	assert.Equal(t, 2, Relevance("Energy matters", []string{"energy", "energy"}))
	assert.Equal(t, 1, Relevance("RENEWABLE power", []string{"renewable", "coal"}))
	assert.Equal(t, 0, Relevance("nothing here", []string{"renewable"}))
}
