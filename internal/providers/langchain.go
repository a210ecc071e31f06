package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultAnthropicModel = "claude-3-opus-20240229"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultGroqModel      = "llama-3.1-8b-instant"
	groqBaseURL           = "https://api.groq.com/openai/v1"
	defaultMaxTokens      = 1000
)

// ChatProvider generates text through a langchaingo chat model.
type ChatProvider struct {
	name    string
	keyName string
	model   string
	llm     llms.Model
	initErr error
}

func (c *ChatProvider) info() ProviderInfo {
	return ProviderInfo{Name: c.name, Model: c.model, Key: c.keyName}
}

func (c *ChatProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	if c.initErr != nil {
		return GenerateResponse{}, c.info(), c.initErr
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	resp, err := c.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fullPrompt(req)),
	}, llms.WithMaxTokens(maxTokens))
	if err != nil {
		return GenerateResponse{}, c.info(), fmt.Errorf("%s generate request failed: %w", c.name, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return GenerateResponse{}, c.info(), fmt.Errorf("%s: %w", c.name, ErrEmptyResponse)
	}
	return GenerateResponse{Text: resp.Choices[0].Content}, c.info(), nil
}

func NewAnthropicProvider(keyName string) *ChatProvider {
	p := &ChatProvider{
		name:    "anthropic",
		keyName: keyName,
		model:   envOr("DOCQUERY_ANTHROPIC_MODEL", defaultAnthropicModel),
	}
	key := resolveKey("ANTHROPIC", keyName)
	if key == "" {
		p.initErr = fmt.Errorf("anthropic key for alias %q: %w", keyName, ErrMissingKey)
		return p
	}
	p.llm, p.initErr = anthropic.New(anthropic.WithToken(key), anthropic.WithModel(p.model))
	return p
}

func NewOpenAIProvider(keyName string) *ChatProvider {
	return newOpenAICompatible("openai", keyName, "OPENAI", envOr("DOCQUERY_OPENAI_MODEL", defaultOpenAIModel), os.Getenv("DOCQUERY_OPENAI_BASE_URL"))
}

// NewGroqProvider uses Groq's OpenAI-compatible endpoint.
func NewGroqProvider(keyName string) *ChatProvider {
	return newOpenAICompatible("groq", keyName, "GROQ", envOr("DOCQUERY_GROQ_MODEL", defaultGroqModel), groqBaseURL)
}

func newOpenAICompatible(name, keyName, envName, model, baseURL string) *ChatProvider {
	p := &ChatProvider{name: name, keyName: keyName, model: model}
	key := resolveKey(envName, keyName)
	if key == "" {
		p.initErr = fmt.Errorf("%s key for alias %q: %w", name, keyName, ErrMissingKey)
		return p
	}
	opts := []openai.Option{openai.WithToken(key), openai.WithModel(model)}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	p.llm, p.initErr = openai.New(opts...)
	return p
}

// resolveKey prefers DOCQUERY_<NAME>_KEY_<ALIAS> and falls back to <NAME>_API_KEY.
func resolveKey(envName, alias string) string {
	if alias != "" {
		if v := os.Getenv("DOCQUERY_" + envName + "_KEY_" + sanitizeEnvToken(alias)); v != "" {
			return v
		}
	}
	return os.Getenv(envName + "_API_KEY")
}

func envOr(k, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return fallback
}

func sanitizeEnvToken(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}
