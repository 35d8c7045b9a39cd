package tasks

import (
	"context"
	"fmt"
)

// newCatalogMetricsTask refreshes the chat, sticker and binding gauges.
func newCatalogMetricsTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "catalog_metrics")

	return func(ctx context.Context) error {
		stats, err := deps.Store.Stats(ctx)
		if err != nil {
			return fmt.Errorf("catalog stats: %w", err)
		}

		deps.Metrics.SetCatalog(stats.Chats, stats.Stickers, stats.Bindings)
		log.DebugContext(ctx, "Catalog gauges refreshed", "chats", stats.Chats, "stickers", stats.Stickers, "bindings", stats.Bindings)
		return nil
	}
}
