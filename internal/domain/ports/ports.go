// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions, adapters implement them.
package ports

import (
	"context"
	"io"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
)

// Generator produces text from a language model.
type Generator interface {
	// Generate sends one prompt to the named model and returns its text.
	// Any transport, status or payload failure is returned as an error.
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// ConversationStore keeps the ordered turns of every user.
type ConversationStore interface {
	// Append adds a turn to the end of the user's conversation, creating it if needed.
	Append(ctx context.Context, userID string, turn entities.Turn) error

	// Turns returns a copy of the user's turns in order. Unknown users yield an empty slice.
	Turns(ctx context.Context, userID string) ([]entities.Turn, error)

	// Users lists the user ids that have a conversation.
	Users(ctx context.Context) ([]string, error)
}

// ContextSource assembles the context blob from uploaded documents.
type ContextSource interface {
	// Load never fails; unreadable documents are reported in ContextBlob.Skipped.
	Load(ctx context.Context) entities.ContextBlob

	// Invalidate drops any cached blob so the next Load re-reads the documents.
	Invalidate()
}

// UploadFile is one file in an upload batch.
type UploadFile struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// DocumentStore persists uploaded documents.
type DocumentStore interface {
	// Save writes the document under name, replacing any previous content.
	Save(ctx context.Context, name string, r io.Reader) error

	// List returns the stored documents' names.
	List(ctx context.Context) ([]string, error)
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
	FileRenamed
)

func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}
