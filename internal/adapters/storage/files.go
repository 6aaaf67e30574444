// Package storage persists uploaded documents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrEmptyName is returned when a document has no usable filename.
var ErrEmptyName = errors.New("empty filename")

// FileStore implements ports.DocumentStore as a flat directory.
// Names are used as given: no manifest, no versioning, last write wins.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "uploaded_files"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the upload directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes r to the named file, truncating any previous content.
func (s *FileStore) Save(ctx context.Context, name string, r io.Reader) error {
	if name == "" || name == "." {
		return ErrEmptyName
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing content: %w", err)
	}
	return f.Close()
}

// List returns the names of regular files in the directory, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing uploads: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
