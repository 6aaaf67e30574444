// Package llm provides text-generation adapters.
// Every adapter implements ports.Generator.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
)

// DefaultEndpoint is the generation endpoint used when none is configured.
const DefaultEndpoint = "https://api.liteLLM.com/generate"

// GenericAdapter calls a JSON endpoint that takes {prompt, model} and answers {text}.
type GenericAdapter struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewGenericAdapter creates an adapter for endpoint. apiKey may be empty.
func NewGenericAdapter(endpoint, apiKey string) *GenericAdapter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &GenericAdapter{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type generateResponse struct {
	Text *string `json:"text"`
}

// Generate posts the prompt and returns the "text" field of the reply.
func (a *GenericAdapter) Generate(ctx context.Context, prompt, model string) (string, error) {
	jsonData, err := json.Marshal(generateRequest{Prompt: prompt, Model: model})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", a.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if genResp.Text == nil {
		return entities.DefaultReplyText, nil
	}
	return *genResp.Text, nil
}
