package llm

import (
	"fmt"

	"github.com/0xcro3dile/chatassist/internal/domain/ports"
)

// Supported providers.
const (
	ProviderGeneric   = "generic"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Options selects and configures a generation backend.
type Options struct {
	Provider           string
	Endpoint           string // generic
	APIKey             string // generic
	OllamaURL          string
	OpenAIKey          string
	OpenAIBaseURL      string
	AnthropicKey       string
	AnthropicBaseURL   string
	AnthropicMaxTokens int
}

// New returns the Generator for opts.Provider. An empty provider means generic.
func New(opts Options) (ports.Generator, error) {
	switch opts.Provider {
	case "", ProviderGeneric:
		return NewGenericAdapter(opts.Endpoint, opts.APIKey), nil
	case ProviderOllama:
		return NewOllamaAdapter(opts.OllamaURL), nil
	case ProviderOpenAI:
		return NewOpenAIAdapter(opts.OpenAIKey, opts.OpenAIBaseURL)
	case ProviderAnthropic:
		return NewAnthropicAdapter(opts.AnthropicKey, opts.AnthropicBaseURL, opts.AnthropicMaxTokens)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", opts.Provider)
	}
}
