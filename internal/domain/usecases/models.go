package usecases

import (
	"fmt"
	"sync"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
)

// ModelRegistry holds the allowed models and the process-wide current model.
type ModelRegistry struct {
	mu        sync.RWMutex
	available []string
	current   string
}

// NewModelRegistry creates a registry. The initial model must be in available.
func NewModelRegistry(available []string, initial string) (*ModelRegistry, error) {
	if len(available) == 0 {
		return nil, fmt.Errorf("no models configured")
	}
	r := &ModelRegistry{available: append([]string(nil), available...)}
	if !r.allowed(initial) {
		return nil, fmt.Errorf("initial model %q: %w", initial, entities.ErrInvalidModel)
	}
	r.current = initial
	return r, nil
}

// Set replaces the current model. Unknown names leave the current model untouched.
func (r *ModelRegistry) Set(name string) (string, error) {
	if !r.allowed(name) {
		return "", entities.ErrInvalidModel
	}
	r.mu.Lock()
	r.current = name
	r.mu.Unlock()
	return name, nil
}

// Current returns the model used when a request names none.
func (r *ModelRegistry) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Available returns a copy of the allowed model names.
func (r *ModelRegistry) Available() []string {
	return append([]string(nil), r.available...)
}

// available is immutable after construction, so no lock is needed here.
func (r *ModelRegistry) allowed(name string) bool {
	for _, m := range r.available {
		if m == name {
			return true
		}
	}
	return false
}
