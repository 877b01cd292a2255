package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/gatefold"
	"github.com/aretw0/gatefold/internal/logging"
	"github.com/aretw0/gatefold/pkg/adapters/memory"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type watchedLoader struct {
	*memory.Loader
	events chan string
}

func (l *watchedLoader) Watch(ctx context.Context) (<-chan string, error) {
	return l.events, nil
}

func TestInvalidateOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := &watchedLoader{
		Loader: memory.NewLoader(map[string]string{"signal": "<a>"}),
		events: make(chan string),
	}
	store := memory.NewStore()
	eng, err := gatefold.New("", gatefold.WithLoader(loader), gatefold.WithStore(store))
	require.NoError(t, err)

	_, err = eng.LowerByID(ctx, "signal")
	require.NoError(t, err)
	_, err = store.Load(ctx, "signal")
	require.NoError(t, err)

	require.NoError(t, InvalidateOnChange(ctx, eng, logging.NewNop()))
	loader.events <- "signal"

	assert.Eventually(t, func() bool {
		_, err := store.Load(ctx, "signal")
		return errors.Is(err, domain.ErrModelNotFound)
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, loader.Put("signal", []byte("<b>")))
	m, err := eng.LowerByID(ctx, "signal")
	require.NoError(t, err)
	assert.Equal(t, "<b>", m.Complexes[0].Strands[0].String())
}

func TestInvalidateOnChange_Unwatchable(t *testing.T) {
	eng, err := gatefold.New("", gatefold.WithLoader(memory.NewLoader(nil)))
	require.NoError(t, err)

	assert.Error(t, InvalidateOnChange(context.Background(), eng, logging.NewNop()))
}
