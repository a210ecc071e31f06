package answer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMonitor struct {
	mu        sync.Mutex
	attempted map[Strategy]int
	failed    map[Strategy]int
	matched   map[Strategy]int
	finished  int
}

func newCountingMonitor() *countingMonitor {
	return &countingMonitor{
		attempted: map[Strategy]int{},
		failed:    map[Strategy]int{},
		matched:   map[Strategy]int{},
	}
}

func (c *countingMonitor) Start(string, []string) {}

func (c *countingMonitor) TierAttempted(s Strategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempted[s]++
}

func (c *countingMonitor) TierFailed(s Strategy, _ error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed[s]++
}

func (c *countingMonitor) TierEmpty(Strategy) {}

func (c *countingMonitor) TierMatched(s Strategy, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matched[s]++
}

func (c *countingMonitor) Finish(Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished++
}

type failingTier struct{}

func (failingTier) Strategy() Strategy { return StrategyConjunctive }

func (failingTier) Attempt(string, []string) ([]Candidate, error) {
	return nil, errors.New("boom")
}

func TestAnswerRenewableExample(t *testing.T) {
	res := Answer("What is renewable energy", "Solar power is renewable. Coal power is not renewable.")
	require.True(t, res.Found())
	assert.Equal(t, "Solar power is renewable", *res.DirectAnswer)
	assert.Contains(t, []Strategy{StrategyConjunctive, StrategyDisjunctive}, res.PatternUsed)
	assert.Nil(t, res.Error)
	assert.NoError(t, res.Err())
}

func TestAnswerNoMatch(t *testing.T) {
	res := Answer("xyz", "Cats are mammals.\nDogs are mammals too.")
	assert.False(t, res.Found())
	require.NotNil(t, res.Error)
	assert.ErrorIs(t, res.Err(), ErrNoMatch)
	assert.Equal(t, StrategyNone, res.PatternUsed)
	assert.Empty(t, res.Matches)
}

func TestAnswerParagraphFallback(t *testing.T) {
	text := "Inventory list\nwidget count forty\ngadget count nine"
	mon := newCountingMonitor()
	res := New(WithMonitor(mon)).Answer("widget", text)
	require.True(t, res.Found())
	assert.Equal(t, "widget count forty", *res.DirectAnswer)
	assert.Equal(t, StrategyParagraph, res.PatternUsed)
	assert.Equal(t, 1, mon.attempted[StrategySentence])
	assert.Equal(t, 1, mon.matched[StrategyParagraph])
}

func TestAnswerSentenceFallback(t *testing.T) {
	// Keyword sits in the trailing fragment, which no pattern tier can close.
	text := "Cats are mammals. Dogs bark loudly"
	res := Answer("dogs", text)
	require.True(t, res.Found())
	assert.Equal(t, StrategySentence, res.PatternUsed)
	assert.Equal(t, "Dogs bark loudly", *res.DirectAnswer)
}

func TestAnswerEmptyInput(t *testing.T) {
	for _, tc := range []struct{ query, text string }{
		{"", "some text."},
		{"query", ""},
		{"   ", "\n\t"},
	} {
		res := Answer(tc.query, tc.text)
		assert.False(t, res.Found())
		assert.ErrorIs(t, res.Err(), ErrEmptyInput)
	}
}

func TestAnswerStopsAtFirstMatchingTier(t *testing.T) {
	mon := newCountingMonitor()
	res := New(WithMonitor(mon)).Answer("solar renewable", "Solar power is renewable. Coal is not.")
	require.True(t, res.Found())
	assert.Equal(t, StrategyConjunctive, res.PatternUsed)
	assert.Equal(t, 1, mon.attempted[StrategyConjunctive])
	assert.Zero(t, mon.attempted[StrategyDisjunctive])
	assert.Zero(t, mon.attempted[StrategySentence])
	assert.Zero(t, mon.attempted[StrategyParagraph])
	assert.Equal(t, 1, mon.finished)
}

func TestAnswerTierErrorDegrades(t *testing.T) {
	mon := newCountingMonitor()
	e := New(WithMonitor(mon), WithTiers(failingTier{}, SentenceTier{}))
	res := e.Answer("mammals", "Cats are mammals.")
	require.True(t, res.Found())
	assert.Equal(t, StrategySentence, res.PatternUsed)
	assert.Equal(t, 1, mon.failed[StrategyConjunctive])
}

func TestAnswerIsIdempotent(t *testing.T) {
	text := "Solar power is renewable. Wind power is renewable too. Coal is finite."
	e := New()
	first, err := json.Marshal(e.Answer("renewable power", text))
	require.NoError(t, err)
	second, err := json.Marshal(e.Answer("renewable power", text))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestAnswerContainsKeyword(t *testing.T) {
	texts := []string{
		"Alpha beta. Gamma delta keyword here. Epsilon.",
		"no punctuation\nbut a line with keyword inside",
		"keyword at the start without anything else",
		"Ends with KEYWORD!",
	}
	for _, text := range texts {
		res := Answer("where is the keyword", text)
		require.True(t, res.Found(), text)
		assert.Contains(t, strings.ToLower(*res.DirectAnswer), "keyword")
	}
}

func TestAnswerMatchLimit(t *testing.T) {
	text := "one apple. two apple. three apple. four apple. five apple."
	res := Answer("apple", text)
	assert.Len(t, res.Matches, DefaultMatchLimit)

	res = New(WithMatchLimit(5)).Answer("apple", text)
	assert.Len(t, res.Matches, 5)
}

func TestResultJSON(t *testing.T) {
	res := Answer("renewable", "Solar power is renewable.")
	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"direct_answer":"Solar power is renewable","matches":["Solar power is renewable"],"pattern_used":1,"error":null}`, string(b))

	b, err = json.Marshal(Answer("xyz", "nothing."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"direct_answer":null,"matches":[],"pattern_used":null,"error":"no matches found"}`, string(b))

	var back Result
	require.NoError(t, json.Unmarshal([]byte(`{"pattern_used":"word_search"}`), &back))
	assert.Equal(t, StrategyParagraph, back.PatternUsed)
}

func TestAnswerBatch(t *testing.T) {
	text := "Solar power is renewable. Coal power is not renewable.\nwidget line"
	queries := []string{"solar", "widget", "xyz", ""}
	mon := newCountingMonitor()
	res, err := New(WithMonitor(mon)).AnswerBatch(context.Background(), text, queries, 2)
	require.NoError(t, err)
	require.Len(t, res, len(queries))
	assert.Equal(t, "Solar power is renewable", *res[0].DirectAnswer)
	assert.Equal(t, "widget line", *res[1].DirectAnswer)
	assert.ErrorIs(t, res[2].Err(), ErrNoMatch)
	assert.ErrorIs(t, res[3].Err(), ErrEmptyInput)
	assert.Equal(t, len(queries), mon.finished)
}

func TestAnswerBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().AnswerBatch(ctx, "text.", []string{"text"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
