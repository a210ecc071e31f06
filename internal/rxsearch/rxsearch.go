package rxsearch

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

var ErrInvalidPattern = errors.New("invalid regex pattern")

// Match is one regex hit. Start and End are character offsets into the
// searched text.
type Match struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// FindAll returns every non-overlapping match of pattern in text, with ^ and $
// matching at line boundaries. No ranking is applied.
func FindAll(text, pattern string) ([]Match, error) {
	re, err := regexp.Compile("(?m)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	locs := re.FindAllStringIndex(text, -1)
	out := make([]Match, 0, len(locs))
	// Byte offsets are converted to character offsets incrementally.
	bytePos, runePos := 0, 0
	advance := func(to int) int {
		runePos += utf8.RuneCountInString(text[bytePos:to])
		bytePos = to
		return runePos
	}
	for _, loc := range locs {
		start := advance(loc[0])
		end := advance(loc[1])
		out = append(out, Match{Text: text[loc[0]:loc[1]], Start: start, End: end})
	}
	return out, nil
}
