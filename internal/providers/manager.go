package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docquery/internal/config"
)

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

// Call describes one provider attempt made by the Manager.
type Call struct {
	ID        string
	Operation string
	Provider  ProviderInfo
	Duration  time.Duration
	Err       error
}

// CallObserver is notified after every provider attempt.
type CallObserver func(ctx context.Context, call Call)

type Manager struct {
	llmProviders []NamedLLMProvider
	maxTokens    int
	observers    []CallObserver
}

func NewManager(cfg config.Config) (*Manager, error) {
	m := &Manager{maxTokens: cfg.LLMMaxTokens}
	for _, ref := range ParseProviderList(cfg.LLMProviders) {
		p, err := buildProvider(ref)
		if err != nil {
			return nil, err
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	if len(m.llmProviders) == 0 {
		m.llmProviders = []NamedLLMProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()}}
	}
	return m, nil
}

// NewManagerWith builds a Manager over already constructed providers.
func NewManagerWith(maxTokens int, providers ...NamedLLMProvider) *Manager {
	return &Manager{llmProviders: providers, maxTokens: maxTokens}
}

func (m *Manager) Observe(obs CallObserver) {
	m.observers = append(m.observers, obs)
}

func (m *Manager) LLMCount() int {
	return len(m.llmProviders)
}

func (m *Manager) LLMProviderRefs() []ProviderRef {
	out := make([]ProviderRef, 0, len(m.llmProviders))
	for i := range m.llmProviders {
		out = append(out, m.llmProviders[i].Ref)
	}
	return out
}

func (m *Manager) PreferredLLMOrder() []int {
	return preferredOrder(len(m.llmProviders), func(i int) string { return strings.ToLower(m.llmProviders[i].Ref.Name) })
}

// Generate tries providers in preferred order and returns the first success.
// Every attempt is reported to the observers. The error of the last attempt is
// returned when all providers fail.
func (m *Manager) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	if len(m.llmProviders) == 0 {
		return GenerateResponse{}, ProviderInfo{}, ErrNoProviders
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = m.maxTokens
	}
	var errs []error
	for _, i := range m.PreferredLLMOrder() {
		if err := ctx.Err(); err != nil {
			return GenerateResponse{}, ProviderInfo{}, err
		}
		named := m.llmProviders[i]
		start := time.Now()
		resp, info, err := named.Provider.Generate(ctx, req)
		if info.Name == "" {
			info.Name = named.Ref.Name
		}
		m.notify(ctx, Call{
			ID:        uuid.NewString(),
			Operation: req.Operation,
			Provider:  info,
			Duration:  time.Since(start),
			Err:       err,
		})
		if err == nil {
			return resp, info, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", named.Ref.Raw, err))
	}
	return GenerateResponse{}, ProviderInfo{}, fmt.Errorf("all llm providers failed: %w", errors.Join(errs...))
}

func (m *Manager) notify(ctx context.Context, call Call) {
	for _, obs := range m.observers {
		obs(ctx, call)
	}
}

func preferredOrder(n int, nameAt func(i int) string) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if nameAt(i) != "mock" {
			out = append(out, i)
		}
	}
	for i := 0; i < n; i++ {
		if nameAt(i) == "mock" {
			out = append(out, i)
		}
	}
	return out
}

func (m *Manager) FindLLMProviderByName(name string) (LLMProvider, ProviderRef, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil, ProviderRef{}, false
	}
	for i := range m.llmProviders {
		if strings.ToLower(m.llmProviders[i].Ref.Name) == target {
			return m.llmProviders[i].Provider, m.llmProviders[i].Ref, true
		}
	}
	return nil, ProviderRef{}, false
}

func buildProvider(ref ProviderRef) (LLMProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "anthropic":
		return NewAnthropicProvider(ref.KeyAlias), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias), nil
	case "ollama":
		return NewOllamaProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, ref.Name)
	}
}
