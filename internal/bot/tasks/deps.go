// Package tasks implements the bot's scheduled maintenance jobs.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/stickerbot/internal/database"
	"github.com/edgard/stickerbot/internal/metrics"
)

// Store is the storage surface the tasks need.
type Store interface {
	Stats(ctx context.Context) (database.CatalogStats, error)
	RunSQLMaintenance(ctx context.Context) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  Store
	// Metrics is optional; catalog_metrics is not registered without it.
	Metrics *metrics.Metrics
}
