package llm

import (
	"context"
	"errors"
)

// ErrProviderUnavailable is returned when no text-generation backend is
// configured. Callers must catch it and fall back to deterministic
// generation; it is never surfaced to API clients.
var ErrProviderUnavailable = errors.New("llm: no provider configured")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature  float64
	MaxTokens    int
	Model        string // Override default model
	SystemPrompt string
}

// ApplyOptions resolves the option list over the contract defaults
// (maxTokens=4000, temperature=0.7).
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		Temperature: 0.7,
		MaxTokens:   4000,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// LLMProvider defines the contract for any text-generation backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
