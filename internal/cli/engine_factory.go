package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/gatefold"
	"github.com/aretw0/gatefold/internal/config"
	"github.com/aretw0/gatefold/internal/logging"
	"github.com/aretw0/gatefold/pkg/adapters/file"
	"github.com/aretw0/gatefold/pkg/adapters/memory"
	"github.com/aretw0/gatefold/pkg/adapters/redis"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/gatefold/pkg/observability"
	"github.com/aretw0/gatefold/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultLockTTL bounds how long one replica may hold a model's cache lock.
const DefaultLockTTL = 30 * time.Second

// EngineOptions carries what the commands decide on top of the config file.
type EngineOptions struct {
	Config config.Config
	Logger *slog.Logger
	// Registry receives the lowering metrics. Nil disables metrics.
	Registry prometheus.Registerer
	Validate bool
	// NoLibrary builds an engine that only lowers raw sources.
	NoLibrary bool
}

// CreateEngine initializes an engine with standard CLI conventions.
// The returned close function releases the cache backend.
func CreateEngine(opts EngineOptions) (*gatefold.Engine, func() error, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	// 1. Logger & Hooks
	hooks := []domain.LifecycleHooks{observability.LoggingHooks(logger)}
	if opts.Registry != nil {
		hooks = append(hooks, observability.NewMetrics(opts.Registry).Hooks())
	}
	engineOpts := []gatefold.Option{
		gatefold.WithLogger(logger),
		gatefold.WithLifecycleHooks(observability.Chain(hooks...)),
		gatefold.WithValidation(opts.Validate),
	}

	// 2. Cache
	store, locker, closeStore, err := createStore(opts.Config.Store)
	if err != nil {
		return nil, nil, err
	}
	if store != nil {
		engineOpts = append(engineOpts, gatefold.WithStore(store))
	}
	if locker != nil {
		engineOpts = append(engineOpts, gatefold.WithLocker(locker, DefaultLockTTL))
	}

	// 3. Initialize
	dir := opts.Config.Library.Dir
	if opts.NoLibrary {
		dir = ""
	}
	engine, err := gatefold.New(dir, engineOpts...)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("error initializing engine: %w", err), closeStore())
	}

	logger.Debug("Engine ready", "library", dir, "store", opts.Config.Store.Backend)
	return engine, closeStore, nil
}

func createStore(cfg config.StoreConfig) (ports.ModelStore, ports.DistributedLocker, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", "none":
		return nil, nil, noop, nil
	case "memory":
		return memory.NewStore(), nil, noop, nil
	case "file":
		return file.New(cfg.Dir), nil, noop, nil
	case "redis":
		var storeOpts []redis.Option
		if cfg.Redis.Prefix != "" {
			storeOpts = append(storeOpts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, storeOpts...)

		var locker ports.DistributedLocker
		if cfg.Redis.Lock {
			prefix := cfg.Redis.Prefix
			if prefix == "" {
				prefix = redis.DefaultPrefix
			}
			locker = redis.NewLocker(store.Client(), prefix)
		}
		return store, locker, store.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
