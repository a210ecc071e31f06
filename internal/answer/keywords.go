package answer

import (
	"strings"
	"unicode/utf8"
)

const minKeywordRunes = 4

var queryPunct = strings.NewReplacer("?", "", ".", "", ",", "", "!", "")

// ExtractKeywords lower-cases the query, drops ?.,! and keeps tokens longer
// than three characters. When no token is long enough the full token list is
// returned instead. Order and duplicates are preserved.
func ExtractKeywords(query string) []string {
	tokens := strings.Fields(queryPunct.Replace(strings.ToLower(query)))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if utf8.RuneCountInString(t) >= minKeywordRunes {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return tokens
	}
	return out
}

// Relevance counts the keywords contained in text, ignoring case. Keywords
// are counted as a list, so a repeated keyword scores once per occurrence in
// the list.
func Relevance(text string, keywords []string) int {
	low := strings.ToLower(text)
	score := 0
	for _, kw := range keywords {
		if strings.Contains(low, strings.ToLower(kw)) {
			score++
		}
	}
	return score
}
