package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/gatefold/pkg/ports"
)

// SourceLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.SourceLoader.
func SourceLoaderContractTest(t *testing.T, loader ports.SourceLoader, setupData map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	// 1. Test GetSource (Success)
	t.Run("GetSource_Success", func(t *testing.T) {
		for id, expectedContent := range setupData {
			content, err := loader.GetSource(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting source %s: %v", id, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", id, content, expectedContent)
			}
		}
	})

	// 2. Test GetSource (NotFound)
	t.Run("GetSource_NotFound", func(t *testing.T) {
		_, err := loader.GetSource(ctx, "non-existent-model")
		if !errors.Is(err, domain.ErrModelNotFound) {
			t.Errorf("expected ErrModelNotFound for non-existent model, got %v", err)
		}
	})

	// 3. Test ListSources
	t.Run("ListSources", func(t *testing.T) {
		ids, err := loader.ListSources(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing sources: %v", err)
		}

		if len(ids) != len(setupData) {
			t.Errorf("expected %d sources, got %d", len(setupData), len(ids))
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}

		for id := range setupData {
			if !lookup[id] {
				t.Errorf("source %s missing from list", id)
			}
		}
	})
}
