package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/gatefold/pkg/adapters/memory"
	contract "github.com/aretw0/gatefold/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	data := map[string]string{
		"signal":     "<t^ x>",
		"transducer": "[ {t^*}[x]<y> ]",
	}

	bytesData := make(map[string][]byte)
	for k, v := range data {
		bytesData[k] = []byte(v)
	}

	loader := memory.NewLoader(data)

	contract.SourceLoaderContractTest(t, loader, bytesData)
}

func TestInMemoryLoader_Put(t *testing.T) {
	loader := memory.NewLoader(nil)
	ctx := context.Background()

	src := []byte("<a>")
	require.NoError(t, loader.Put("a", src))
	src[1] = 'z'

	got, err := loader.GetSource(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "<a>", string(got), "Put copies its input")

	assert.Error(t, loader.Put("", src))

	ids, err := loader.ListSources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}
