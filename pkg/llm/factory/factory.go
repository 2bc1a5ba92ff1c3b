package factory

import (
	"context"
	"fmt"

	"github.com/byndl-mvp/PoC-sub002/pkg/llm"
	"github.com/byndl-mvp/PoC-sub002/pkg/llm/ollama"
)

// NewLLMProvider builds the configured provider. An empty or "none" provider
// type is valid: it yields a provider whose calls fail with
// ErrProviderUnavailable, which the pipeline recovers from via fallback
// generation.
func NewLLMProvider(providerType, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "", "none":
		return &unavailableProvider{}, nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

type unavailableProvider struct{}

func (p *unavailableProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return "", llm.ErrProviderUnavailable
}

func (p *unavailableProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return "", llm.ErrProviderUnavailable
}
