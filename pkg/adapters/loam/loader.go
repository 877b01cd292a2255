package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts the Loam library to the gatefold SourceLoader interface.
// Each document in the repository is one model: the body holds the source
// text and the frontmatter carries SourceMetadata. A model's ID is always its
// path without the extension, so GetSource, ListSources and Watch agree.
type Loader struct {
	Repo *loam.TypedRepository[SourceMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SourceMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// GetSource retrieves the source text of a model.
// Toeholds declared in the frontmatter are prepended as a toehold declaration.
func (l *Loader) GetSource(ctx context.Context, id string) ([]byte, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if known, lerr := l.has(ctx, id); lerr == nil && !known {
			return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, id)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	body := strings.TrimSpace(doc.Content)
	if len(doc.Data.Toeholds) > 0 {
		body = "toehold " + strings.Join(doc.Data.Toeholds, " ") + "\n" + body
	}
	return []byte(body), nil
}

func (l *Loader) has(ctx context.Context, id string) (bool, error) {
	ids, err := l.ListSources(ctx)
	if err != nil {
		return false, err
	}
	want := trimExtension(id)
	for _, known := range ids {
		if known == want {
			return true, nil
		}
	}
	return false, nil
}

// ListSources lists all models in the repository.
func (l *Loader) ListSources(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		id := trimExtension(doc.ID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch reports the IDs of documents that change on disk.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
