package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
)

// DefaultAnthropicMaxTokens caps the answer length when none is configured.
const DefaultAnthropicMaxTokens = 1024

// AnthropicAdapter generates text with the Anthropic Messages API.
type AnthropicAdapter struct {
	client    anthropic.Client
	maxTokens int64
}

// NewAnthropicAdapter creates an adapter. baseURL is optional.
func NewAnthropicAdapter(apiKey, baseURL string, maxTokens int) (*AnthropicAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is not configured")
	}
	if maxTokens <= 0 {
		maxTokens = DefaultAnthropicMaxTokens
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &AnthropicAdapter{
		client:    anthropic.NewClient(opts...),
		maxTokens: int64(maxTokens),
	}, nil
}

// Generate sends the prompt as a single user message and joins the text blocks of the reply.
func (a *AnthropicAdapter) Generate(ctx context.Context, prompt, model string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating message: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return entities.DefaultReplyText, nil
	}
	return sb.String(), nil
}
