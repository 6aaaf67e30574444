package usecases

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
	"github.com/0xcro3dile/chatassist/internal/domain/ports"
)

// FallbackMode selects what the dispatcher does when a backend call fails.
type FallbackMode string

const (
	// FallbackMock answers with a locally generated placeholder.
	FallbackMock FallbackMode = "mock"
	// FallbackError reports the failure as a GenerationError.
	FallbackError FallbackMode = "error"
)

const (
	// DefaultGenerationTimeout bounds a single backend call.
	DefaultGenerationTimeout = 30 * time.Second

	mockPromptPrefix = 50
)

// Dispatcher sends prompts to the generation backend.
type Dispatcher struct {
	generator ports.Generator
	mode      FallbackMode
	timeout   time.Duration
}

// NewDispatcher creates a Dispatcher. Unknown modes behave like FallbackMock.
func NewDispatcher(generator ports.Generator, mode FallbackMode, timeout time.Duration) *Dispatcher {
	if mode != FallbackError {
		mode = FallbackMock
	}
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &Dispatcher{
		generator: generator,
		mode:      mode,
		timeout:   timeout,
	}
}

// Dispatch makes exactly one backend call for prompt on model.
// With FallbackMock it never returns an error; failures come back as
// OutcomeFallback generations carrying the failure reason.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt, model string) (entities.Generation, error) {
	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	text, err := d.generator.Generate(callCtx, prompt, model)
	if err == nil {
		return entities.Generation{
			Model:   model,
			Text:    text,
			Outcome: entities.OutcomeSuccess,
		}, nil
	}

	if d.mode == FallbackError {
		log.Printf("[ERROR] Generation with %s failed: %v", model, err)
		return entities.Generation{}, &entities.GenerationError{Model: model, Err: err}
	}

	log.Printf("[WARN] Generation with %s failed, using mock response: %v", model, err)
	return entities.Generation{
		Model:   model,
		Text:    MockResponse(model, prompt),
		Outcome: entities.OutcomeFallback,
		Reason:  err.Error(),
	}, nil
}

// MockResponse is the placeholder text used when a backend call fails.
func MockResponse(model, prompt string) string {
	return fmt.Sprintf("Mock response from %s for prompt: %s...", model, truncateRunes(prompt, mockPromptPrefix))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
