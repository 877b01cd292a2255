package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/gatefold/pkg/adapters/file"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/gatefold/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ModelStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunModelStoreContract(t, store)
}

func TestFileStore_NestedIDs(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	model := &domain.Model{Complexes: []domain.Complex{{Multiplicity: 1, Strands: []domain.Strand{{domain.NewSite("a")}}}}}
	require.NoError(t, store.Save(ctx, "gates/and", model))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "nested IDs are flattened into one file")
	assert.Equal(t, "gates%2Fand.json", entries[0].Name())

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"gates/and"}, ids)

	loaded, err := store.Load(ctx, "gates/and")
	require.NoError(t, err)
	assert.Equal(t, model.Complexes, loaded.Complexes)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = store.Load(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestFileStore_EmptyID(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", &domain.Model{}))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}
