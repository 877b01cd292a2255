package gatefold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/gatefold/internal/compiler"
	"github.com/aretw0/gatefold/internal/lowering"
	"github.com/aretw0/gatefold/internal/validator"
	loamAdapter "github.com/aretw0/gatefold/pkg/adapters/loam"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/gatefold/pkg/ports"
	"github.com/aretw0/loam"
)

// ErrNoLibrary is returned by library operations when the engine has no loader.
var ErrNoLibrary = errors.New("no model library configured")

// Engine is the high-level entry point for the gatefold library.
// It parses model sources, lowers them to plain strands and optionally caches
// the results.
type Engine struct {
	loader   ports.SourceLoader
	store    ports.ModelStore
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	validate bool
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom SourceLoader, bypassing the default Loam initialization.
func WithLoader(l ports.SourceLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithStore enables caching of models lowered by ID.
func WithStore(s ports.ModelStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker serializes cache misses for the same ID across replicas.
// It only has an effect together with WithStore.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithValidation makes every lowering run check its output for binding
// integrity and undeclared toeholds.
func WithValidation(enabled bool) Option {
	return func(e *Engine) {
		e.validate = enabled
	}
}

// New initializes a new Engine.
// When libraryPath is set and no loader is injected, a read-only Loam
// repository at that path serves as the model library. With neither, the
// engine can still lower raw sources.
func New(libraryPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{lockTTL: 30 * time.Second}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil && libraryPath != "" {
		absPath, err := filepath.Abs(libraryPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		eng.Name = filepath.Base(absPath)

		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		typedRepo := loam.NewTypedRepository[loamAdapter.SourceMetadata](repo)
		eng.loader = loamAdapter.New(typedRepo)
	} else if libraryPath != "" {
		eng.Name = filepath.Base(libraryPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("library", eng.Name)
	}

	return eng, nil
}

// Parse reads source text into a source model without lowering it.
func (e *Engine) Parse(src []byte) (*domain.SourceModel, error) {
	return compiler.Parse(string(src))
}

// Lower parses and lowers source text.
func (e *Engine) Lower(ctx context.Context, src []byte) (*domain.Model, error) {
	sm, err := e.Parse(src)
	if err != nil {
		return nil, err
	}
	return e.lower(ctx, "", sm)
}

// LowerModel lowers an already parsed (or programmatically built) source model.
func (e *Engine) LowerModel(ctx context.Context, sm *domain.SourceModel) (*domain.Model, error) {
	return e.lower(ctx, "", sm)
}

// LowerByID lowers a model from the library. With a store configured the
// result is cached under id and later calls are served from the cache.
func (e *Engine) LowerByID(ctx context.Context, id string) (*domain.Model, error) {
	if e.loader == nil {
		return nil, ErrNoLibrary
	}

	if m, ok := e.cached(ctx, id); ok {
		return m, nil
	}

	if e.store != nil && e.locker != nil {
		unlock, err := e.locker.Lock(ctx, id, e.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("lock %s: %w", id, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("failed to release lock", "model", id, "error", err)
			}
		}()

		// Another replica may have filled the cache while we waited.
		if m, ok := e.cached(ctx, id); ok {
			return m, nil
		}
	}

	src, err := e.loader.GetSource(ctx, id)
	if err != nil {
		return nil, err
	}
	sm, err := e.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", id, err)
	}

	m, err := e.lower(ctx, id, sm)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", id, err)
	}

	if e.store != nil {
		if err := e.store.Save(ctx, id, m); err != nil {
			e.logger.Warn("failed to cache lowered model", "model", id, "error", err)
		}
	}
	return m, nil
}

func (e *Engine) cached(ctx context.Context, id string) (*domain.Model, bool) {
	if e.store == nil {
		return nil, false
	}
	m, err := e.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrModelNotFound) {
			e.logger.Warn("model cache unavailable", "model", id, "error", err)
		}
		return nil, false
	}
	e.logger.Debug("model cache hit", "model", id)
	return m, true
}

func (e *Engine) lower(ctx context.Context, id string, sm *domain.SourceModel) (*domain.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sm == nil {
		return nil, fmt.Errorf("nil source model")
	}

	started := time.Now()
	event := &domain.LowerEvent{
		EventBase: domain.EventBase{Timestamp: started, Type: domain.EventLowerStart},
		ModelID:   id,
		Complexes: len(sm.Complexes),
	}
	if e.hooks.OnLowerStart != nil {
		e.hooks.OnLowerStart(ctx, event)
	}

	m, bindings, err := lowering.LowerWith(lowering.NewAllocator(), sm)
	if err == nil && e.validate {
		err = validator.Validate(m)
	}

	event.Duration = time.Since(started)
	event.Timestamp = time.Now()
	if err != nil {
		event.Type = domain.EventLowerError
		event.Err = err
		if e.hooks.OnLowerError != nil {
			e.hooks.OnLowerError(ctx, event)
		}
		return nil, err
	}

	event.Type = domain.EventLowerEnd
	event.Strands = m.StrandCount()
	event.Bindings = bindings
	if e.hooks.OnLowerEnd != nil {
		e.hooks.OnLowerEnd(ctx, event)
	}
	return m, nil
}

// List returns the IDs of the models in the library.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	if e.loader == nil {
		return nil, ErrNoLibrary
	}
	return e.loader.ListSources(ctx)
}

// Source returns the raw source text of a library model.
func (e *Engine) Source(ctx context.Context, id string) ([]byte, error) {
	if e.loader == nil {
		return nil, ErrNoLibrary
	}
	return e.loader.GetSource(ctx, id)
}

// Invalidate drops the cached lowering of id, if any.
func (e *Engine) Invalidate(ctx context.Context, id string) error {
	if e.store == nil {
		return nil
	}
	return e.store.Delete(ctx, id)
}

// Validate lowers and checks every model in the library.
func (e *Engine) Validate(ctx context.Context) error {
	if e.loader == nil {
		return ErrNoLibrary
	}
	return validator.ValidateLibrary(ctx, e.loader)
}

// Watch returns a channel carrying the IDs of library models that change.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying SourceLoader used by the engine.
func (e *Engine) Loader() ports.SourceLoader {
	return e.loader
}

// Store returns the model cache, or nil.
func (e *Engine) Store() ports.ModelStore {
	return e.store
}
