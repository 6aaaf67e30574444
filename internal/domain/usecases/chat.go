package usecases

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
	"github.com/0xcro3dile/chatassist/internal/domain/ports"
)

// Default model pair used by Compare.
const (
	DefaultCompareModelA = "model-A"
	DefaultCompareModelB = "model-B"
)

// ChatUseCase handles chat, comparison, model selection and uploads.
//
// Requests for the same user id are serialized: the lock covers appending
// the user turn, building the prompt, the model call and appending the
// answer. Requests for different users run in parallel.
type ChatUseCase struct {
	store      ports.ConversationStore
	context    ports.ContextSource
	documents  ports.DocumentStore
	dispatcher *Dispatcher
	models     *ModelRegistry
	compareA   string
	compareB   string

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewChatUseCase creates a ChatUseCase with injected dependencies.
// Empty compare models default to model-A and model-B.
func NewChatUseCase(
	store ports.ConversationStore,
	contextSource ports.ContextSource,
	documents ports.DocumentStore,
	dispatcher *Dispatcher,
	models *ModelRegistry,
	compareA, compareB string,
) *ChatUseCase {
	if compareA == "" {
		compareA = DefaultCompareModelA
	}
	if compareB == "" {
		compareB = DefaultCompareModelB
	}
	return &ChatUseCase{
		store:      store,
		context:    contextSource,
		documents:  documents,
		dispatcher: dispatcher,
		models:     models,
		compareA:   compareA,
		compareB:   compareB,
		locks:      make(map[string]*sync.Mutex),
	}
}

// SetModel selects the model used by chats that don't name one.
func (uc *ChatUseCase) SetModel(name string) (string, error) {
	model, err := uc.models.Set(name)
	if err != nil {
		return "", err
	}
	log.Printf("[INFO] Current model set to %s", model)
	return model, nil
}

// Models returns the allowed models and the current one.
func (uc *ChatUseCase) Models() (available []string, current string) {
	return uc.models.Available(), uc.models.Current()
}

// CompareModels returns the two models Compare dispatches to.
func (uc *ChatUseCase) CompareModels() (a, b string) {
	return uc.compareA, uc.compareB
}

// Upload stores files in order. The first failure aborts the rest of the batch.
func (uc *ChatUseCase) Upload(ctx context.Context, files []ports.UploadFile) ([]string, error) {
	saved := make([]string, 0, len(files))
	for _, f := range files {
		if err := uc.saveOne(ctx, f); err != nil {
			return saved, &entities.StorageError{Filename: f.Name, Err: err}
		}
		uc.context.Invalidate()
		saved = append(saved, f.Name)
	}
	log.Printf("[INFO] Uploaded %d file(s)", len(saved))
	return saved, nil
}

func (uc *ChatUseCase) saveOne(ctx context.Context, f ports.UploadFile) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	defer rc.Close()
	return uc.documents.Save(ctx, f.Name, rc)
}

// Documents lists the uploaded documents.
func (uc *ChatUseCase) Documents(ctx context.Context) ([]string, error) {
	return uc.documents.List(ctx)
}

// Chat records the message, asks the model and records its answer.
// An empty model uses the current selection.
func (uc *ChatUseCase) Chat(ctx context.Context, userID, message, model string) (entities.Generation, error) {
	if model == "" {
		model = uc.models.Current()
	}

	unlock := uc.lockUser(userID)
	defer unlock()

	prompt, err := uc.recordAndPrompt(ctx, userID, message)
	if err != nil {
		return entities.Generation{}, err
	}

	gen, err := uc.dispatcher.Dispatch(ctx, prompt, model)
	if err != nil {
		return entities.Generation{}, err
	}

	if err := uc.store.Append(ctx, userID, entities.Turn{Role: entities.RoleAssistant, Content: gen.Text}); err != nil {
		return entities.Generation{}, fmt.Errorf("recording answer: %w", err)
	}
	return gen, nil
}

// Compare sends the same prompt to both compare models and records both answers, A first.
func (uc *ChatUseCase) Compare(ctx context.Context, userID, message string) (entities.Comparison, error) {
	unlock := uc.lockUser(userID)
	defer unlock()

	prompt, err := uc.recordAndPrompt(ctx, userID, message)
	if err != nil {
		return entities.Comparison{}, err
	}

	var (
		wg         sync.WaitGroup
		genA, genB entities.Generation
		errA, errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		genA, errA = uc.dispatcher.Dispatch(ctx, prompt, uc.compareA)
	}()
	go func() {
		defer wg.Done()
		genB, errB = uc.dispatcher.Dispatch(ctx, prompt, uc.compareB)
	}()
	wg.Wait()

	if errA != nil {
		return entities.Comparison{}, errA
	}
	if errB != nil {
		return entities.Comparison{}, errB
	}

	for _, gen := range []entities.Generation{genA, genB} {
		if err := uc.store.Append(ctx, userID, entities.Turn{Role: entities.RoleAssistant, Content: gen.Text}); err != nil {
			return entities.Comparison{}, fmt.Errorf("recording answer from %s: %w", gen.Model, err)
		}
	}
	return entities.Comparison{A: genA, B: genB}, nil
}

// History returns the user's turns in order.
func (uc *ChatUseCase) History(ctx context.Context, userID string) ([]entities.Turn, error) {
	return uc.store.Turns(ctx, userID)
}

// recordAndPrompt appends the user turn and builds the prompt from the full history.
func (uc *ChatUseCase) recordAndPrompt(ctx context.Context, userID, message string) (string, error) {
	if err := uc.store.Append(ctx, userID, entities.Turn{Role: entities.RoleUser, Content: message}); err != nil {
		return "", fmt.Errorf("recording message: %w", err)
	}

	blob := uc.context.Load(ctx)
	for _, skipped := range blob.Skipped {
		log.Printf("[WARN] Context skipped: %v", skipped)
	}

	turns, err := uc.store.Turns(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("reading history: %w", err)
	}
	return BuildPrompt(blob.Text, turns), nil
}

// lockUser acquires the user's mutex and returns its release func.
func (uc *ChatUseCase) lockUser(userID string) func() {
	uc.locksMu.Lock()
	mu, ok := uc.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		uc.locks[userID] = mu
	}
	uc.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
