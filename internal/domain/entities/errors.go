package entities

import (
	"errors"
	"fmt"
)

// ErrInvalidModel is returned when a model outside the allowed set is selected.
var ErrInvalidModel = errors.New("model not available")

// StorageError is returned when an uploaded file cannot be written.
type StorageError struct {
	Filename string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("Failed to save %s: %v", e.Filename, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// GenerationError is returned when a model call fails and no fallback applies.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating with %s: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
