package gatefold_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/gatefold"
	"github.com/aretw0/gatefold/internal/testutils"
	"github.com/aretw0/gatefold/pkg/adapters/memory"
	"github.com/aretw0/gatefold/pkg/adapters/redis"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/gatefold/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transducer = `
toehold t
[ {t^*}[x]<y> ]
| 2 <t^ x>
`

func TestEngine_Lower(t *testing.T) {
	eng, err := gatefold.New("")
	require.NoError(t, err)

	m, err := eng.Lower(context.Background(), []byte(transducer))
	require.NoError(t, err)

	assert.Equal(t, []string{"t"}, m.Toeholds)
	require.Len(t, m.Complexes, 2)
	assert.Equal(t, 2, m.Complexes[1].Multiplicity)
	assert.Equal(t, "<x!#1 y>", m.Complexes[0].Strands[0].String())
	assert.Equal(t, "<x*!#1 t^*>", m.Complexes[0].Strands[1].String())
}

func TestEngine_Lower_SyntaxError(t *testing.T) {
	eng, err := gatefold.New("")
	require.NoError(t, err)

	_, err = eng.Lower(context.Background(), []byte("<a"))
	assert.ErrorContains(t, err, "line 1")
}

func TestEngine_Lower_CanceledContext(t *testing.T) {
	eng, err := gatefold.New("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = eng.Lower(ctx, []byte("<a>"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var events []*domain.LowerEvent
	var mu sync.Mutex
	record := func(ctx context.Context, e *domain.LowerEvent) {
		mu.Lock()
		defer mu.Unlock()
		copied := *e
		events = append(events, &copied)
	}

	eng, err := gatefold.New("", gatefold.WithLifecycleHooks(domain.LifecycleHooks{
		OnLowerStart: record,
		OnLowerEnd:   record,
		OnLowerError: record,
	}))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = eng.Lower(ctx, []byte(transducer))
	require.NoError(t, err)

	_, err = eng.Lower(ctx, []byte("<l}[a]::[b]{r>"))
	require.ErrorIs(t, err, domain.ErrUnsupportedCircularStructure)

	require.Len(t, events, 4)
	assert.Equal(t, domain.EventLowerStart, events[0].Type)
	assert.Equal(t, 2, events[0].Complexes)
	assert.Equal(t, domain.EventLowerEnd, events[1].Type)
	assert.Equal(t, 3, events[1].Strands)
	assert.Equal(t, 1, events[1].Bindings)
	assert.Equal(t, domain.EventLowerStart, events[2].Type)
	assert.Equal(t, domain.EventLowerError, events[3].Type)

	var cerr *domain.CircularStructureError
	require.True(t, errors.As(events[3].Err, &cerr))
	assert.Equal(t, domain.EdgeUpper, cerr.Edge)
}

func TestEngine_WithValidation(t *testing.T) {
	src := []byte("toehold t\n<u^ x!1>")

	plain, err := gatefold.New("")
	require.NoError(t, err)
	_, err = plain.Lower(context.Background(), src)
	assert.NoError(t, err)

	strict, err := gatefold.New("", gatefold.WithValidation(true))
	require.NoError(t, err)
	_, err = strict.Lower(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `binding "1" appears 1 times`)
	assert.Contains(t, err.Error(), "toehold domains not declared: u")
}

func TestEngine_LowerByID_Cache(t *testing.T) {
	loader := memory.NewLoader(map[string]string{"transducer": transducer})
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	eng, err := gatefold.New("lib",
		gatefold.WithLoader(loader),
		gatefold.WithStore(store),
		gatefold.WithLifecycleHooks(metrics.Hooks()),
	)
	require.NoError(t, err)
	assert.Equal(t, "lib", eng.Name)
	ctx := context.Background()

	first, err := eng.LowerByID(ctx, "transducer")
	require.NoError(t, err)

	cached, err := store.Load(ctx, "transducer")
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	// The source changes but the cache still answers.
	require.NoError(t, loader.Put("transducer", []byte("<broken")))
	second, err := eng.LowerByID(ctx, "transducer")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, eng.Invalidate(ctx, "transducer"))
	_, err = eng.LowerByID(ctx, "transducer")
	assert.ErrorContains(t, err, "model transducer: line 1")

	families, err := reg.Gather()
	require.NoError(t, err)
	var runs float64
	for _, mf := range families {
		if mf.GetName() == "gatefold_lowerings_total" {
			for _, m := range mf.GetMetric() {
				runs += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, runs, "cache hits do not lower again and parse errors never reach lowering")
}

func TestEngine_LowerByID_NotFound(t *testing.T) {
	eng, err := gatefold.New("", gatefold.WithLoader(memory.NewLoader(nil)))
	require.NoError(t, err)

	_, err = eng.LowerByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestEngine_NoLibrary(t *testing.T) {
	eng, err := gatefold.New("")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = eng.LowerByID(ctx, "x")
	assert.ErrorIs(t, err, gatefold.ErrNoLibrary)
	_, err = eng.List(ctx)
	assert.ErrorIs(t, err, gatefold.ErrNoLibrary)
	assert.ErrorIs(t, eng.Validate(ctx), gatefold.ErrNoLibrary)
	assert.NoError(t, eng.Invalidate(ctx, "x"), "no store means nothing to invalidate")

	_, err = eng.Watch(ctx)
	assert.Error(t, err)
}

func TestEngine_LowerByID_RedisCacheWithLock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	locker := redis.NewLocker(client, "gatefold:")

	loader := memory.NewLoader(map[string]string{"transducer": transducer})
	eng, err := gatefold.New("",
		gatefold.WithLoader(loader),
		gatefold.WithStore(store),
		gatefold.WithLocker(locker, 5*time.Second),
	)
	require.NoError(t, err)

	ctx := context.Background()
	var wg sync.WaitGroup
	results := make([]*domain.Model, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = eng.LowerByID(ctx, "transducer")
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}

	assert.True(t, mr.Exists(redis.DefaultPrefix+"m:transducer"))
	assert.False(t, mr.Exists("gatefold:lock:transducer"), "lock is released after lowering")
}

func TestEngine_LoamLibrary(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.WriteDocs(t, dir, map[string]string{
		"signal.md": "---\ntoeholds: [t]\n---\n<t^ x>\n",
		"ring.md":   "<l}[a]::[b]{r>\n",
	})

	eng, err := gatefold.New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	ids, err := eng.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"signal", "ring"}, ids)

	m, err := eng.LowerByID(ctx, "signal")
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, m.Toeholds)

	err = eng.Validate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ring:")
}
