package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Key   string `json:"key"`
}

type GenerateRequest struct {
	Operation string   `json:"operation"`
	Prompt    string   `json:"prompt"`
	Context   []string `json:"context"`
	MaxTokens int      `json:"max_tokens"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

type LLMProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error)
}

const systemPrompt = "You are a document assistant. Keep responses concise and grounded in the provided context."

func fullPrompt(req GenerateRequest) string {
	if len(req.Context) == 0 {
		return req.Prompt
	}
	prompt := req.Prompt + "\n\nContext:\n"
	for i, c := range req.Context {
		if i > 0 {
			prompt += "\n\n"
		}
		prompt += c
	}
	return prompt
}
