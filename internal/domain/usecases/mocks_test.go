package usecases

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
	"github.com/0xcro3dile/chatassist/internal/domain/ports"
)

type generateCall struct {
	prompt string
	model  string
}

// mockGenerator implements ports.Generator for testing
type mockGenerator struct {
	mu         sync.Mutex
	calls      []generateCall
	generateFn func(prompt, model string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, generateCall{prompt: prompt, model: model})
	m.mu.Unlock()
	if m.generateFn != nil {
		return m.generateFn(prompt, model)
	}
	return "answer from " + model, nil
}

func (m *mockGenerator) snapshot() []generateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generateCall(nil), m.calls...)
}

// mockStore implements ports.ConversationStore for testing
type mockStore struct {
	mu       sync.Mutex
	turns    map[string][]entities.Turn
	appendFn func(turn entities.Turn) error
}

func newMockStore() *mockStore {
	return &mockStore{turns: make(map[string][]entities.Turn)}
}

func (m *mockStore) Append(ctx context.Context, userID string, turn entities.Turn) error {
	if m.appendFn != nil {
		if err := m.appendFn(turn); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[userID] = append(m.turns[userID], turn)
	return nil
}

func (m *mockStore) Turns(ctx context.Context, userID string) ([]entities.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entities.Turn(nil), m.turns[userID]...), nil
}

func (m *mockStore) Users(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []string
	for u := range m.turns {
		users = append(users, u)
	}
	return users, nil
}

// mockContext implements ports.ContextSource for testing
type mockContext struct {
	blob        entities.ContextBlob
	invalidated int
}

func (m *mockContext) Load(ctx context.Context) entities.ContextBlob { return m.blob }

func (m *mockContext) Invalidate() { m.invalidated++ }

// mockDocuments implements ports.DocumentStore for testing
type mockDocuments struct {
	files  map[string]string
	saveFn func(name string) error
}

func (m *mockDocuments) Save(ctx context.Context, name string, r io.Reader) error {
	if m.saveFn != nil {
		if err := m.saveFn(name); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if m.files == nil {
		m.files = make(map[string]string)
	}
	m.files[name] = buf.String()
	return nil
}

func (m *mockDocuments) List(ctx context.Context) ([]string, error) {
	var names []string
	for n := range m.files {
		names = append(names, n)
	}
	return names, nil
}

func uploadOf(name, content string) ports.UploadFile {
	return ports.UploadFile{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewBufferString(content)), nil
		},
	}
}

var errBackendDown = errors.New("backend down")

type fixture struct {
	gen   *mockGenerator
	store *mockStore
	ctx   *mockContext
	docs  *mockDocuments
	uc    *ChatUseCase
}

func newFixture(mode FallbackMode) *fixture {
	f := &fixture{
		gen:   &mockGenerator{},
		store: newMockStore(),
		ctx:   &mockContext{},
		docs:  &mockDocuments{},
	}
	models, err := NewModelRegistry([]string{"model-A", "model-B", "model-C"}, "model-A")
	if err != nil {
		panic(err)
	}
	f.uc = NewChatUseCase(f.store, f.ctx, f.docs, NewDispatcher(f.gen, mode, 0), models, "", "")
	return f
}
