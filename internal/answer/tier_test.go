package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Text)
	}
	return out
}

func TestConjunctiveTier(t *testing.T) {
	text := "Solar power is renewable. Coal power is not renewable! Wind is free?"

	cands, err := ConjunctiveTier{}.Attempt(text, []string{"power", "renewable"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Solar power is renewable", "Coal power is not renewable"}, texts(cands))

	cands, err = ConjunctiveTier{}.Attempt(text, []string{"solar", "coal"})
	require.NoError(t, err)
	assert.Empty(t, cands, "keywords in different sentences must not match")
}

func TestConjunctiveTierIsOrderSensitive(t *testing.T) {
	// Known limitation: keywords must appear in query order.
	text := "Renewable energy comes from solar panels."
	cands, err := ConjunctiveTier{}.Attempt(text, []string{"solar", "renewable"})
	require.NoError(t, err)
	assert.Empty(t, cands)

	cands, err = DisjunctiveTier{}.Attempt(text, []string{"solar", "renewable"})
	require.NoError(t, err)
	assert.NotEmpty(t, cands)
}

func TestDisjunctiveTierRebuildsFirstSentence(t *testing.T) {
	text := "Solar power is renewable. Coal power is not renewable."
	cands, err := DisjunctiveTier{}.Attempt(text, []string{"what", "renewable", "energy"})
	require.NoError(t, err)
	require.Len(t, cands, 2)
	for _, c := range cands {
		assert.Equal(t, "Solar power is renewable", c.Text)
		assert.Equal(t, StrategyDisjunctive, c.Strategy)
	}
}

func TestDisjunctiveTierCaseInsensitive(t *testing.T) {
	text := "Intro text. The RESULT was positive. Later the result changed."
	cands, err := DisjunctiveTier{}.Attempt(text, []string{"result"})
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	assert.Equal(t, "The RESULT was positive", cands[0].Text)
}

func TestPatternTiersEscapeKeywords(t *testing.T) {
	text := "The value of f(x) is 3.5 here. Another line (unrelated)."
	for _, tier := range []Tier{ConjunctiveTier{}, DisjunctiveTier{}} {
		t.Run(tier.Strategy().String(), func(t *testing.T) {
			cands, err := tier.Attempt(text, []string{"f(x)"})
			require.NoError(t, err)
			require.NotEmpty(t, cands)
			assert.Contains(t, cands[0].Text, "f(x)")

			_, err = tier.Attempt(text, []string{"(", ")", "3.5", "[a-"})
			require.NoError(t, err)
		})
	}
	assert.Equal(t, `(?im)(f\(x\)|3\.5)[^.!?]*[.!?]`, disjunctivePattern([]string{"f(x)", "3.5"}))
}

func TestPatternTiersNeedKeywords(t *testing.T) {
	for _, tier := range []Tier{ConjunctiveTier{}, DisjunctiveTier{}} {
		cands, err := tier.Attempt("Anything at all.", nil)
		require.NoError(t, err)
		assert.Empty(t, cands)
	}
}

func TestSentenceTier(t *testing.T) {
	text := "Cats are mammals. Dogs are loyal mammals! Birds fly?"
	cands, err := SentenceTier{}.Attempt(text, []string{"mammals", "loyal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cats are mammals", "Dogs are loyal mammals"}, texts(cands))
	assert.Equal(t, []int{1, 2}, []int{cands[0].Score, cands[1].Score})

	cands, err = SentenceTier{}.Attempt("no terminators at all\nmammals here", []string{"mammals"})
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestParagraphTier(t *testing.T) {
	text := "first line\n\n  second line with keyword  \nthird"
	cands, err := ParagraphTier{}.Attempt(text, []string{"keyword"})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "second line with keyword", cands[0].Text)
	assert.Equal(t, StrategyParagraph, cands[0].Strategy)
}

func TestRankIsStable(t *testing.T) {
	cands := []Candidate{
		{Text: "alpha one"},
		{Text: "alpha beta two"},
		{Text: "alpha three"},
		{Text: "beta alpha four"},
	}
	got := rank(cands, []string{"alpha", "beta"})
	assert.Equal(t, []string{"alpha beta two", "beta alpha four", "alpha one", "alpha three"}, texts(got))
}
