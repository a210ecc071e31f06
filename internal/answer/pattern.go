package answer

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	sentenceBody       = `[^.!?]*`
	sentenceTerminator = `[.!?]`
	terminators        = ".!?"
)

// ConjunctiveTier matches sentences that contain every keyword, in keyword
// order. The ordering requirement comes from how the pattern is built; a
// question phrased in a different order than the document falls through to
// DisjunctiveTier.
type ConjunctiveTier struct{}

func (ConjunctiveTier) Strategy() Strategy { return StrategyConjunctive }

func (ConjunctiveTier) Attempt(text string, keywords []string) ([]Candidate, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	re, err := regexp.Compile(conjunctivePattern(keywords))
	if err != nil {
		return nil, fmt.Errorf("compile conjunctive pattern: %w", err)
	}
	var out []Candidate
	for _, m := range re.FindAllString(text, -1) {
		s := trimSentence(m)
		if s == "" {
			continue
		}
		out = append(out, Candidate{Text: s, Strategy: StrategyConjunctive})
	}
	return out, nil
}

func conjunctivePattern(keywords []string) string {
	var b strings.Builder
	b.WriteString(`(?im)`)
	for _, kw := range keywords {
		b.WriteString(sentenceBody)
		b.WriteString(`?`)
		b.WriteString(regexp.QuoteMeta(kw))
	}
	b.WriteString(sentenceBody)
	b.WriteString(sentenceTerminator)
	return b.String()
}

// DisjunctiveTier matches any single keyword that is followed by a sentence
// terminator and answers with the sentence around the keyword's first
// occurrence in the text.
type DisjunctiveTier struct{}

func (DisjunctiveTier) Strategy() Strategy { return StrategyDisjunctive }

func (DisjunctiveTier) Attempt(text string, keywords []string) ([]Candidate, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	re, err := regexp.Compile(disjunctivePattern(keywords))
	if err != nil {
		return nil, fmt.Errorf("compile disjunctive pattern: %w", err)
	}
	firstSeen := map[string]int{}
	var out []Candidate
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		kw := strings.ToLower(m[1])
		pos, ok := firstSeen[kw]
		if !ok {
			pos, err = firstOccurrence(text, m[1])
			if err != nil {
				return nil, err
			}
			firstSeen[kw] = pos
		}
		if pos < 0 {
			continue
		}
		s := sentenceAround(text, pos)
		if s == "" {
			continue
		}
		out = append(out, Candidate{Text: s, Strategy: StrategyDisjunctive})
	}
	return out, nil
}

func disjunctivePattern(keywords []string) string {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}
	return `(?im)(` + strings.Join(quoted, "|") + `)` + sentenceBody + sentenceTerminator
}

func firstOccurrence(text, word string) (int, error) {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(word))
	if err != nil {
		return -1, fmt.Errorf("compile keyword %q: %w", word, err)
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return -1, nil
	}
	return loc[0], nil
}

// sentenceAround returns the span between the last '.' before pos and the
// first '.' at or after pos.
func sentenceAround(text string, pos int) string {
	start := strings.LastIndexByte(text[:pos], '.') + 1
	end := len(text)
	if i := strings.IndexByte(text[pos:], '.'); i >= 0 {
		end = pos + i
	}
	return strings.TrimSpace(text[start:end])
}

func trimSentence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, terminators)
	return strings.TrimSpace(s)
}
