package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/stickerbot/internal/engine"
	"github.com/edgard/stickerbot/internal/logger"
	"github.com/edgard/stickerbot/internal/sentry"
)

// Processor runs one update through the engine and delivers the response.
type Processor struct {
	deps HandlerDeps
	log  *slog.Logger
}

// NewProcessor creates a processor.
func NewProcessor(deps HandlerDeps) *Processor {
	return &Processor{
		deps: deps,
		log:  deps.Logger.With("component", "processor"),
	}
}

// Process handles a single update synchronously. A returned error means the update
// was not fully handled and may be redelivered.
func (p *Processor) Process(ctx context.Context, update *models.Update) error {
	start := time.Now()
	ev := ToEvent(update)
	eventType := ev.Type.String()

	err := p.process(ctx, update, ev)

	if p.deps.Metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		p.deps.Metrics.RecordUpdate(eventType, status, time.Since(start).Seconds())
	}
	return err
}

func (p *Processor) process(ctx context.Context, update *models.Update, ev engine.Event) error {
	resp, err := p.deps.Dispatcher.Dispatch(ctx, ev)
	if err != nil {
		return fmt.Errorf("dispatch update %d: %w", update.ID, err)
	}

	if p.deps.Metrics != nil {
		p.deps.Metrics.RecordResponse(resp.Kind.String())
	}
	if resp.Empty() && resp.CallbackQueryID == "" {
		return nil
	}

	if err := Deliver(ctx, p.deps.Sender, resp); err != nil {
		var de *deliverError
		if errors.As(err, &de) && p.deps.Metrics != nil {
			p.deps.Metrics.RecordSendError(de.method)
		}
		return fmt.Errorf("deliver response for update %d: %w", update.ID, err)
	}

	p.log.DebugContext(ctx, "Response delivered", "update_id", update.ID, "kind", resp.Kind, "chat_id", resp.ChatID)
	return nil
}

// Handle adapts Process to a go-telegram handler for polling mode, where
// failures can only be logged and reported.
func (p *Processor) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if err := p.Process(ctx, update); err != nil {
		p.log.ErrorContext(ctx, "Failed to process update", append(logger.UpdateAttrs(update), "error", err)...)
		sentry.CaptureExceptionWithContext(ctx, err)
	}
}
