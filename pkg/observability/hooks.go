package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/gatefold/pkg/domain"
)

// LoggingHooks logs every lowering event on logger.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLowerStart: func(ctx context.Context, e *domain.LowerEvent) {
			logger.DebugContext(ctx, "lowering started", "model", e.ModelID, "complexes", e.Complexes)
		},
		OnLowerEnd: func(ctx context.Context, e *domain.LowerEvent) {
			logger.InfoContext(ctx, "lowering finished",
				"model", e.ModelID,
				"complexes", e.Complexes,
				"strands", e.Strands,
				"bindings", e.Bindings,
				"duration", e.Duration,
			)
		},
		OnLowerError: func(ctx context.Context, e *domain.LowerEvent) {
			logger.WarnContext(ctx, "lowering failed", "model", e.ModelID, "error", e.Err)
		},
	}
}

// Chain merges several hook sets. Callbacks run in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var start, end, fail []func(context.Context, *domain.LowerEvent)
	for _, h := range sets {
		if h.OnLowerStart != nil {
			start = append(start, h.OnLowerStart)
		}
		if h.OnLowerEnd != nil {
			end = append(end, h.OnLowerEnd)
		}
		if h.OnLowerError != nil {
			fail = append(fail, h.OnLowerError)
		}
	}
	return domain.LifecycleHooks{
		OnLowerStart: fanOut(start),
		OnLowerEnd:   fanOut(end),
		OnLowerError: fanOut(fail),
	}
}

func fanOut(fns []func(context.Context, *domain.LowerEvent)) func(context.Context, *domain.LowerEvent) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *domain.LowerEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}
