package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIAdapter_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "gpt-4o-mini" || len(req.Messages) != 1 || req.Messages[0].Content != "User: Hi\nAssistant:" {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello!"}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	adapter, err := NewOpenAIAdapter("test-key", server.URL+"/v1")
	if err != nil {
		t.Fatalf("adapter failed: %v", err)
	}
	resp, err := adapter.Generate(context.Background(), "User: Hi\nAssistant:", "gpt-4o-mini")

	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp != "Hello!" {
		t.Errorf("unexpected response: %s", resp)
	}
}

func TestAnthropicAdapter_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "Bonjour"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 1}
		}`))
	}))
	defer server.Close()

	adapter, err := NewAnthropicAdapter("test-key", server.URL, 0)
	if err != nil {
		t.Fatalf("adapter failed: %v", err)
	}
	if adapter.maxTokens != DefaultAnthropicMaxTokens {
		t.Errorf("unexpected max tokens: %d", adapter.maxTokens)
	}

	resp, err := adapter.Generate(context.Background(), "Hi", "claude-test")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp != "Bonjour" {
		t.Errorf("unexpected response: %s", resp)
	}
}
