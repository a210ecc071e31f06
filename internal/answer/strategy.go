package answer

import (
	"encoding/json"
	"fmt"
)

// Strategy identifies the tier that produced a result.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyConjunctive
	StrategyDisjunctive
	StrategySentence
	StrategyParagraph
)

func (s Strategy) String() string {
	switch s {
	case StrategyConjunctive:
		return "conjunctive"
	case StrategyDisjunctive:
		return "disjunctive"
	case StrategySentence:
		return "fallback"
	case StrategyParagraph:
		return "word_search"
	default:
		return "none"
	}
}

// MarshalJSON renders the wire form of pattern_used: 1, 2, "fallback",
// "word_search" or null.
func (s Strategy) MarshalJSON() ([]byte, error) {
	switch s {
	case StrategyConjunctive:
		return []byte("1"), nil
	case StrategyDisjunctive:
		return []byte("2"), nil
	case StrategySentence, StrategyParagraph:
		return json.Marshal(s.String())
	default:
		return []byte("null"), nil
	}
}

func (s *Strategy) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null":
		*s = StrategyNone
	case "1":
		*s = StrategyConjunctive
	case "2":
		*s = StrategyDisjunctive
	case `"fallback"`:
		*s = StrategySentence
	case `"word_search"`:
		*s = StrategyParagraph
	default:
		return fmt.Errorf("unknown pattern_used %s", string(b))
	}
	return nil
}
