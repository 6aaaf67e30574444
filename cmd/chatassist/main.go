package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0xcro3dile/chatassist/internal/adapters/conversation"
	"github.com/0xcro3dile/chatassist/internal/adapters/filewatcher"
	"github.com/0xcro3dile/chatassist/internal/adapters/llm"
	"github.com/0xcro3dile/chatassist/internal/adapters/loader"
	"github.com/0xcro3dile/chatassist/internal/adapters/storage"
	"github.com/0xcro3dile/chatassist/internal/config"
	"github.com/0xcro3dile/chatassist/internal/domain/ports"
	"github.com/0xcro3dile/chatassist/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/chatassist/internal/infrastructure/http"
)

func main() {
	os.Exit(run())
}

// closableStore is a conversation store that owns resources.
type closableStore interface {
	ports.ConversationStore
	Close() error
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("[ERROR] Failed to load config: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, err := storage.NewFileStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Printf("[ERROR] Upload directory: %v", err)
		return 1
	}

	store, err := newStore(cfg.Storage)
	if err != nil {
		log.Printf("[ERROR] Conversation store: %v", err)
		return 1
	}
	defer store.Close()

	contextSource := loader.NewDirectoryLoader(files.Dir())
	if cfg.Storage.WatchUploads {
		watcher, err := filewatcher.NewFSNotifyWatcher(nil)
		if err != nil {
			log.Printf("[WARN] File watcher unavailable, context is re-read per request: %v", err)
		} else {
			defer watcher.Stop()
			events, err := watcher.Watch(ctx, files.Dir())
			if err != nil {
				log.Printf("[WARN] Watching %s: %v", files.Dir(), err)
			} else {
				contextSource.Follow(ctx, events)
				log.Printf("[INFO] Watching %s for changes", files.Dir())
			}
		}
	}

	generator, err := llm.New(llm.Options{
		Provider:           cfg.LLM.Provider,
		Endpoint:           cfg.LLM.Endpoint,
		APIKey:             cfg.LLM.APIKey,
		OllamaURL:          cfg.LLM.OllamaURL,
		OpenAIKey:          cfg.LLM.OpenAIKey,
		OpenAIBaseURL:      cfg.LLM.OpenAIBaseURL,
		AnthropicKey:       cfg.LLM.AnthropicKey,
		AnthropicBaseURL:   cfg.LLM.AnthropicBaseURL,
		AnthropicMaxTokens: cfg.LLM.AnthropicMaxTokens,
	})
	if err != nil {
		log.Printf("[ERROR] LLM backend: %v", err)
		return 1
	}
	dispatcher := usecases.NewDispatcher(generator, usecases.FallbackMode(cfg.LLM.FallbackMode), cfg.LLM.Timeout)

	models, err := usecases.NewModelRegistry(cfg.Models.Available, cfg.Models.Default)
	if err != nil {
		log.Printf("[ERROR] Models: %v", err)
		return 1
	}

	chat := usecases.NewChatUseCase(store, contextSource, files, dispatcher, models, cfg.Models.CompareA, cfg.Models.CompareB)

	server := httpserver.NewServer(chat, httpserver.Options{
		Addr:             ":" + cfg.Server.Port,
		Environment:      cfg.Server.Environment,
		IndexPath:        cfg.IndexHTML,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: cfg.CORS.AllowCredentials,
		WriteTimeout:     cfg.LLM.Timeout + 30*time.Second,
	})

	log.Printf("[INFO] Provider %s, models %v (current %s), fallback %s",
		cfg.LLM.Provider, cfg.Models.Available, cfg.Models.Default, cfg.LLM.FallbackMode)

	if err := server.Start(ctx); err != nil {
		log.Printf("[ERROR] Server: %v", err)
		return 1
	}
	log.Printf("[INFO] Shut down")
	return 0
}

func newStore(cfg config.StorageConfig) (closableStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return conversation.NewMemoryStore(), nil
	case "sqlite":
		dsn := cfg.SQLiteDSN
		if dsn == "" {
			dsn = conversation.DefaultSQLiteDSN
		}
		return conversation.NewSQLiteStore(dsn)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
