package answer

import "strings"

// SentenceTier scores every sentence of the text by keyword containment.
// Text without a single terminator has no sentence structure and yields
// nothing, leaving it to ParagraphTier.
type SentenceTier struct{}

func (SentenceTier) Strategy() Strategy { return StrategySentence }

func (SentenceTier) Attempt(text string, keywords []string) ([]Candidate, error) {
	if !strings.ContainsAny(text, terminators) {
		return nil, nil
	}
	return scoreSpans(splitSentences(text), keywords, StrategySentence), nil
}

// ParagraphTier scores every newline-delimited line of the text.
type ParagraphTier struct{}

func (ParagraphTier) Strategy() Strategy { return StrategyParagraph }

func (ParagraphTier) Attempt(text string, keywords []string) ([]Candidate, error) {
	return scoreSpans(strings.Split(text, "\n"), keywords, StrategyParagraph), nil
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

func scoreSpans(spans []string, keywords []string, s Strategy) []Candidate {
	var out []Candidate
	for _, span := range spans {
		span = strings.TrimSpace(span)
		if span == "" {
			continue
		}
		score := Relevance(span, keywords)
		if score == 0 {
			continue
		}
		out = append(out, Candidate{Text: span, Score: score, Strategy: s})
	}
	return out
}
