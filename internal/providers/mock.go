package providers

import (
	"context"
	"strconv"
	"strings"
)

// MockProvider returns deterministic text without network access.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	if strings.Contains(strings.ToLower(req.Operation), "ask") && len(req.Context) > 0 {
		var b strings.Builder
		b.WriteString("Deterministic answer based on the matched passages.")
		for i := range req.Context {
			b.WriteString(" [M")
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString("]")
		}
		return GenerateResponse{Text: b.String()}, info, nil
	}
	return GenerateResponse{Text: "Mock response."}, info, nil
}
