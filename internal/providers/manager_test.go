package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docquery/internal/config"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
	last  GenerateRequest
}

func (s *stubProvider) Generate(_ context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	s.calls++
	s.last = req
	info := ProviderInfo{Name: s.name, Model: s.name + "-model"}
	if s.err != nil {
		return GenerateResponse{}, info, s.err
	}
	return GenerateResponse{Text: s.text}, info, nil
}

func named(name string, p LLMProvider) NamedLLMProvider {
	return NamedLLMProvider{Ref: ProviderRef{Raw: name, Name: name}, Provider: p}
}

func TestManagerFailsOverToNextProvider(t *testing.T) {
	mock := &stubProvider{name: "mock", text: "mock"}
	broken := &stubProvider{name: "anthropic", err: errors.New("529 overloaded")}
	backup := &stubProvider{name: "openai", text: "from openai"}
	m := NewManagerWith(1000, named("mock", mock), named("anthropic", broken), named("openai", backup))

	var calls []Call
	m.Observe(func(_ context.Context, c Call) { calls = append(calls, c) })

	resp, info, err := m.Generate(context.Background(), GenerateRequest{Operation: "ask_llm", Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "from openai", resp.Text)
	assert.Equal(t, "openai", info.Name)
	assert.Equal(t, 0, mock.calls, "mock is only tried after real providers")
	assert.Equal(t, 1000, backup.last.MaxTokens)

	require.Len(t, calls, 2)
	assert.Error(t, calls[0].Err)
	assert.Equal(t, ErrorTransient, ClassifyError(calls[0].Err))
	assert.NoError(t, calls[1].Err)
	assert.NotEmpty(t, calls[1].ID)
	assert.NotEqual(t, calls[0].ID, calls[1].ID)
}

func TestManagerAllProvidersFail(t *testing.T) {
	m := NewManagerWith(0,
		named("openai", &stubProvider{name: "openai", err: ErrMissingKey}),
		named("groq", &stubProvider{name: "groq", err: errors.New("429 rate limit")}),
	)
	_, _, err := m.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "groq")
}

func TestManagerNoProviders(t *testing.T) {
	_, _, err := NewManagerWith(0).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestManagerStopsOnCancelledContext(t *testing.T) {
	p := &stubProvider{name: "openai", text: "x"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewManagerWith(0, named("openai", p)).Generate(ctx, GenerateRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, p.calls)
}

func TestNewManagerFromConfig(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock|ollama:llama3.1", LLMMaxTokens: 500})
	require.NoError(t, err)
	assert.Equal(t, 2, m.LLMCount())
	assert.Equal(t, []int{1, 0}, m.PreferredLLMOrder())

	p, ref, ok := m.FindLLMProviderByName("OLLAMA")
	require.True(t, ok)
	assert.Equal(t, "llama3.1", ref.KeyAlias)
	assert.Equal(t, "llama3.1", p.(*OllamaProvider).model)

	_, err = NewManager(config.Config{LLMProviders: "watson"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestMockProviderCitesContext(t *testing.T) {
	resp, info, err := NewMockProvider().Generate(context.Background(), GenerateRequest{
		Operation: "ask",
		Prompt:    "q",
		Context:   []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "mock", info.Name)
	assert.Contains(t, resp.Text, "[M1] [M2]")
}
