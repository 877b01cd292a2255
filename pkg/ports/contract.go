package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractModel() *domain.Model {
	bound := domain.NewSite("x").Bind("#1")
	return &domain.Model{
		Toeholds: []string{"t"},
		Nicks:    []domain.Nick{{Left: []domain.Domain{{Name: "a"}}, Right: []domain.Domain{{Name: "b"}}}},
		Complexes: []domain.Complex{
			{Multiplicity: 3, Strands: []domain.Strand{
				{{Domain: domain.Domain{Name: "t", Toehold: true}}, bound},
				{bound.Complement()},
			}},
		},
	}
}

// RunModelStoreContract runs a suite of tests to verify that a ModelStore implementation
// adheres to the defined interface contract.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()
	modelID := "contract-test-model-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		model := contractModel()

		err := store.Save(ctx, modelID, model)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, modelID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, model, loaded)
	})

	t.Run("Load returns an isolated copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, modelID, contractModel()))

		loaded, err := store.Load(ctx, modelID)
		require.NoError(t, err)
		loaded.Complexes[0].Multiplicity = 99

		again, err := store.Load(ctx, modelID)
		require.NoError(t, err)
		assert.Equal(t, 3, again.Complexes[0].Multiplicity)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+modelID)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, modelID, contractModel()))

		err := store.Delete(ctx, modelID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, modelID)
		assert.ErrorIs(t, err, domain.ErrModelNotFound, "Load after Delete should return ErrModelNotFound")

		assert.NoError(t, store.Delete(ctx, modelID), "deleting twice is allowed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := modelID + "-1"
		id2 := modelID + "-2"
		_ = store.Save(ctx, id1, contractModel())
		_ = store.Save(ctx, id2, contractModel())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
