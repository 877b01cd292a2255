package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/gatefold"
	"github.com/aretw0/lifecycle"
)

// InvalidateOnChange drops the cached lowering of every library model that
// changes, until ctx is done. It fails right away when the library cannot be
// watched.
func InvalidateOnChange(ctx context.Context, engine *gatefold.Engine, logger *slog.Logger) error {
	events, err := engine.Watch(ctx)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case id, ok := <-events:
				if !ok {
					logger.Info("Watcher closed")
					return nil
				}
				if err := engine.Invalidate(ctx, id); err != nil {
					logger.Warn("Cache invalidation failed", "model", id, "error", err)
					continue
				}
				logger.Info("Model changed, cache invalidated", "model", id)
			}
		}
	})
	return nil
}
