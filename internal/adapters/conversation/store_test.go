package conversation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
	"github.com/0xcro3dile/chatassist/internal/domain/ports"
)

// Both adapters must satisfy the port.
var (
	_ ports.ConversationStore = (*MemoryStore)(nil)
	_ ports.ConversationStore = (*SQLiteStore)(nil)
)

func newSQLiteForTest(t *testing.T) *SQLiteStore {
	dir, _ := os.MkdirTemp("", "sqlite-test-*")
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := NewSQLiteStore(filepath.Join(dir, "turns.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func stores(t *testing.T) map[string]ports.ConversationStore {
	return map[string]ports.ConversationStore{
		"memory": NewMemoryStore(),
		"sqlite": newSQLiteForTest(t),
	}
}

func TestStores_AppendAndTurns(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store.Append(ctx, "u1", entities.Turn{Role: entities.RoleUser, Content: "Hi"})
			store.Append(ctx, "u1", entities.Turn{Role: entities.RoleAssistant, Content: "Hello"})
			store.Append(ctx, "u2", entities.Turn{Role: entities.RoleUser, Content: "Other"})

			turns, err := store.Turns(ctx, "u1")
			if err != nil {
				t.Fatalf("turns failed: %v", err)
			}
			if len(turns) != 2 {
				t.Fatalf("expected 2 turns, got %d", len(turns))
			}
			if turns[0].Content != "Hi" || turns[1].Role != entities.RoleAssistant {
				t.Errorf("unexpected turns: %+v", turns)
			}
		})
	}
}

func TestStores_UnknownUserIsEmpty(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			turns, err := store.Turns(context.Background(), "nobody")
			if err != nil {
				t.Fatalf("turns failed: %v", err)
			}
			if len(turns) != 0 {
				t.Errorf("expected no turns, got %d", len(turns))
			}
		})
	}
}

func TestStores_Users(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store.Append(ctx, "bob", entities.Turn{Role: entities.RoleUser, Content: "1"})
			store.Append(ctx, "alice", entities.Turn{Role: entities.RoleUser, Content: "2"})
			store.Append(ctx, "bob", entities.Turn{Role: entities.RoleUser, Content: "3"})

			users, err := store.Users(ctx)
			if err != nil {
				t.Fatalf("users failed: %v", err)
			}
			if len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
				t.Errorf("unexpected users: %v", users)
			}
		})
	}
}

func TestStores_ConcurrentAppendKeepsEveryTurn(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					store.Append(ctx, "u1", entities.Turn{Role: entities.RoleUser, Content: fmt.Sprint(i)})
				}(i)
			}
			wg.Wait()

			turns, _ := store.Turns(ctx, "u1")
			if len(turns) != 20 {
				t.Errorf("expected 20 turns, got %d", len(turns))
			}
		})
	}
}

func TestMemoryStore_TurnsIsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	store.Append(ctx, "u1", entities.Turn{Role: entities.RoleUser, Content: "original"})

	turns, _ := store.Turns(ctx, "u1")
	turns[0].Content = "tampered"

	again, _ := store.Turns(ctx, "u1")
	if again[0].Content != "original" {
		t.Error("Turns should return a copy")
	}
}

func TestSQLiteStore_TurnCount(t *testing.T) {
	store := newSQLiteForTest(t)
	ctx := context.Background()
	store.Append(ctx, "u1", entities.Turn{Role: entities.RoleUser, Content: "a"})
	store.Append(ctx, "u2", entities.Turn{Role: entities.RoleUser, Content: "b"})

	count, err := store.TurnCount(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 turns, got %d", count)
	}
}

func TestSQLiteStore_DefaultDSNIsInMemory(t *testing.T) {
	store, err := NewSQLiteStore("")
	if err != nil {
		t.Fatalf("failed to open default store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Append(ctx, "u1", entities.Turn{Role: entities.RoleUser, Content: "x"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	turns, _ := store.Turns(ctx, "u1")
	if len(turns) != 1 {
		t.Errorf("expected 1 turn, got %d", len(turns))
	}
}
