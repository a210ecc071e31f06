package answer

import "errors"

var (
	ErrEmptyInput = errors.New("query and text are required")
	ErrNoMatch    = errors.New("no matches found")
)

// Candidate is a span of the corpus text proposed as an answer.
type Candidate struct {
	Text     string
	Score    int
	Strategy Strategy
}

type Result struct {
	DirectAnswer *string  `json:"direct_answer"`
	Matches      []string `json:"matches"`
	PatternUsed  Strategy `json:"pattern_used"`
	Error        *string  `json:"error"`
}

// Found reports whether the engine produced an answer.
func (r Result) Found() bool {
	return r.DirectAnswer != nil
}

// Err maps the error field back to ErrEmptyInput or ErrNoMatch.
func (r Result) Err() error {
	if r.Error == nil {
		return nil
	}
	switch *r.Error {
	case ErrEmptyInput.Error():
		return ErrEmptyInput
	case ErrNoMatch.Error():
		return ErrNoMatch
	default:
		return errors.New(*r.Error)
	}
}

func errorResult(err error) Result {
	msg := err.Error()
	return Result{Matches: []string{}, Error: &msg}
}

func answerResult(cands []Candidate, limit int) Result {
	best := cands[0].Text
	n := len(cands)
	if limit > 0 && n > limit {
		n = limit
	}
	matches := make([]string, 0, n)
	for _, c := range cands[:n] {
		matches = append(matches, c.Text)
	}
	return Result{DirectAnswer: &best, Matches: matches, PatternUsed: cands[0].Strategy}
}
