// Package loader provides document loading adapters.
package loader

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
	"github.com/0xcro3dile/chatassist/internal/domain/ports"
)

// ErrNotText is returned for documents whose bytes are not valid UTF-8.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// TextLoader loads a single text document.
type TextLoader struct{}

// NewTextLoader creates a new text document loader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load reads a text document from the given path.
func (l *TextLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, ErrNotText
	}

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	return &entities.Document{
		Name:      filepath.Base(path),
		Path:      path,
		Content:   string(content),
		Size:      info.Size(),
		UpdatedAt: info.ModTime(),
	}, nil
}

const blobKey = "context"

// DirectoryLoader implements ports.ContextSource over a flat upload directory.
//
// Without Follow every Load re-reads the directory. While Follow is consuming
// watcher events the assembled blob is cached until the next change.
type DirectoryLoader struct {
	dir    string
	text   *TextLoader
	cache  *cache.Cache
	cached atomic.Bool
	gen    atomic.Uint64 // bumped on every invalidation
}

// NewDirectoryLoader creates a loader for dir.
func NewDirectoryLoader(dir string) *DirectoryLoader {
	return &DirectoryLoader{
		dir:   dir,
		text:  NewTextLoader(),
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Load concatenates every readable file in name order, separated by newlines.
func (l *DirectoryLoader) Load(ctx context.Context) entities.ContextBlob {
	if l.cached.Load() {
		if v, ok := l.cache.Get(blobKey); ok {
			return v.(entities.ContextBlob)
		}
	}

	gen := l.gen.Load()
	blob := l.read(ctx)

	// A change that raced with the read must not be masked by a stale entry.
	if l.cached.Load() && l.gen.Load() == gen {
		l.cache.Set(blobKey, blob, cache.NoExpiration)
	}
	return blob
}

func (l *DirectoryLoader) read(ctx context.Context) entities.ContextBlob {
	var blob entities.ContextBlob

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[ERROR] Listing %s: %v", l.dir, err)
		}
		return blob
	}

	var texts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		doc, err := l.text.Load(ctx, filepath.Join(l.dir, entry.Name()))
		if err != nil {
			blob.Skipped = append(blob.Skipped, entities.ContextReadError{Filename: entry.Name(), Err: err})
			continue
		}
		texts = append(texts, doc.Content)
		blob.Sources = append(blob.Sources, doc.Name)
	}

	blob.Text = strings.Join(texts, "\n")
	return blob
}

// Invalidate drops the cached blob.
func (l *DirectoryLoader) Invalidate() {
	l.gen.Add(1)
	l.cache.Delete(blobKey)
}

// Follow enables caching and invalidates on every event until events closes
// or ctx is done. It returns immediately.
func (l *DirectoryLoader) Follow(ctx context.Context, events <-chan ports.FileEvent) {
	l.Invalidate()
	l.cached.Store(true)

	go func() {
		defer func() {
			l.cached.Store(false)
			l.Invalidate()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				log.Printf("[DEBUG] Upload %s %s", filepath.Base(event.Path), event.Operation)
				l.Invalidate()
			}
		}
	}()
}
