package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProviderMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	p := NewOpenAIProvider("team")
	_, info, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Equal(t, ErrorAuth, ClassifyError(err))
	assert.Equal(t, "openai", info.Name)
}

func TestResolveKeyPrefersAlias(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "global")
	t.Setenv("DOCQUERY_ANTHROPIC_KEY_TEAM_A", "scoped")
	assert.Equal(t, "scoped", resolveKey("ANTHROPIC", "team-a"))
	assert.Equal(t, "global", resolveKey("ANTHROPIC", "other"))
	assert.Equal(t, "global", resolveKey("ANTHROPIC", ""))
}

func TestOpenAIProviderGenerate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Solar power."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 2, "total_tokens": 7}
		}`))
	}))
	defer srv.Close()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DOCQUERY_OPENAI_BASE_URL", srv.URL)

	resp, info, err := NewOpenAIProvider("").Generate(context.Background(), GenerateRequest{Prompt: "what is renewable?"})
	require.NoError(t, err)
	assert.Equal(t, "Solar power.", resp.Text)
	assert.Equal(t, defaultOpenAIModel, info.Model)
	assert.Equal(t, defaultOpenAIModel, body["model"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}
