package answer

// Tier is one step of the answer cascade. Attempt returns the candidates it
// found in text; an empty slice or an error hands control to the next tier.
type Tier interface {
	Strategy() Strategy
	Attempt(text string, keywords []string) ([]Candidate, error)
}

// DefaultTiers returns the cascade in evaluation order: conjunctive pattern,
// disjunctive pattern, sentence scan, paragraph scan.
func DefaultTiers() []Tier {
	return []Tier{
		ConjunctiveTier{},
		DisjunctiveTier{},
		SentenceTier{},
		ParagraphTier{},
	}
}
