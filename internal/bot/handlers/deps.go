package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/stickerbot/internal/engine"
	"github.com/edgard/stickerbot/internal/metrics"
)

// Dispatcher turns an event into a response.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev engine.Event) (engine.Response, error)
}

// HandlerDeps provides dependencies for update processing.
type HandlerDeps struct {
	Logger     *slog.Logger
	Dispatcher Dispatcher
	Sender     Sender
	// Metrics is optional.
	Metrics *metrics.Metrics
}
