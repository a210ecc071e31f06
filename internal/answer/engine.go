package answer

import "strings"

// DefaultMatchLimit is the number of ranked matches returned with an answer.
const DefaultMatchLimit = 3

// Engine answers a query against one text blob by walking its tiers in order
// until one produces candidates. An Engine holds no per-call state and may be
// shared between goroutines.
type Engine struct {
	tiers   []Tier
	monitor Monitor
	limit   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMonitor sets the event recorder. A nil monitor disables recording.
func WithMonitor(m Monitor) Option {
	return func(e *Engine) {
		if m == nil {
			m = noopMonitor{}
		}
		e.monitor = m
	}
}

// WithMatchLimit sets how many ranked matches a Result carries.
// Values below one keep the default.
func WithMatchLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithTiers replaces the cascade.
func WithTiers(tiers ...Tier) Option {
	return func(e *Engine) {
		e.tiers = tiers
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		tiers:   DefaultTiers(),
		monitor: noopMonitor{},
		limit:   DefaultMatchLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Answer runs the cascade. Empty input and the absence of any match are
// reported through Result.Error rather than a Go error.
func (e *Engine) Answer(query, text string) Result {
	if strings.TrimSpace(query) == "" || strings.TrimSpace(text) == "" {
		res := errorResult(ErrEmptyInput)
		e.monitor.Start(query, nil)
		e.monitor.Finish(res)
		return res
	}
	keywords := ExtractKeywords(query)
	e.monitor.Start(query, keywords)
	res := e.cascade(text, keywords)
	e.monitor.Finish(res)
	return res
}

func (e *Engine) cascade(text string, keywords []string) Result {
	if len(keywords) == 0 {
		return errorResult(ErrNoMatch)
	}
	for _, t := range e.tiers {
		s := t.Strategy()
		e.monitor.TierAttempted(s)
		cands, err := t.Attempt(text, keywords)
		if err != nil {
			e.monitor.TierFailed(s, err)
			continue
		}
		if len(cands) == 0 {
			e.monitor.TierEmpty(s)
			continue
		}
		e.monitor.TierMatched(s, len(cands))
		return answerResult(rank(cands, keywords), e.limit)
	}
	return errorResult(ErrNoMatch)
}

// Answer runs a default Engine.
func Answer(query, text string) Result {
	return New().Answer(query, text)
}
