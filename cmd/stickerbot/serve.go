package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/edgard/stickerbot/internal/bot"
	"github.com/edgard/stickerbot/internal/bot/handlers"
	"github.com/edgard/stickerbot/internal/bot/tasks"
	"github.com/edgard/stickerbot/internal/config"
	"github.com/edgard/stickerbot/internal/database"
	"github.com/edgard/stickerbot/internal/engine"
	"github.com/edgard/stickerbot/internal/logger"
	"github.com/edgard/stickerbot/internal/metrics"
	"github.com/edgard/stickerbot/internal/sentry"
	"github.com/edgard/stickerbot/internal/server"
	"github.com/edgard/stickerbot/internal/telegram"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot (webhook server or long polling)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
}

// serve initializes all components (storage, metrics, telegram client, engine,
// listener, scheduler) and blocks until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		Debug:       cfg.Sentry.Debug,
	}); err != nil {
		log.Error("Failed to initialize Sentry", "error", err)
		return err
	}
	defer sentry.Flush(2 * time.Second)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return err
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	if err := store.SyncStandardPack(ctx, cfg.Telegram.StandardStickers); err != nil {
		log.Error("Failed to sync standard sticker pack", "error", err)
		return err
	}
	log.Info("Standard sticker pack synced", "count", len(cfg.Telegram.StandardStickers))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// The default handler is only used in polling mode; processor is set before polling starts.
	var processor *handlers.Processor
	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			processor.Handle(ctx, b, update)
		}),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return err
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return err
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	dispatcher := engine.NewDispatcher(store, engine.Config{
		BotUsername:        me.Username,
		DefaultLanguage:    cfg.Telegram.DefaultLanguage,
		StaleAfter:         cfg.Engine.StaleAfter,
		ChanceMin:          cfg.Engine.ChanceMin,
		ChanceMax:          cfg.Engine.ChanceMax,
		LocalPoolThreshold: cfg.Engine.LocalPoolThreshold,
		Reply:              cfg.Telegram.Reply,
	}, log)

	processor = handlers.NewProcessor(handlers.HandlerDeps{
		Logger:     log,
		Dispatcher: dispatcher,
		Sender:     tg,
		Metrics:    m,
	})

	if cfg.Telegram.RegisterCommands {
		if err := telegram.RegisterCommands(ctx, tg, log); err != nil {
			// The menu is cosmetic; the bot works without it.
			log.Warn("Failed to register bot commands", "error", err)
		}
	}

	listener, err := newListener(ctx, cfg, log, tg, processor, store, registry)
	if err != nil {
		return err
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:  log,
		Store:   store,
		Metrics: m,
	}), m)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return err
	}

	app := bot.NewBot(log, listener, sched)
	log.Info("Starting bot...", "mode", cfg.Telegram.Mode)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		sentry.CaptureExceptionWithContext(ctx, err)
		return err
	}

	log.Info("Bot stopped gracefully.")
	return nil
}

func newListener(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
	tg *tgbot.Bot,
	processor *handlers.Processor,
	store database.Store,
	registry *prometheus.Registry,
) (bot.Listener, error) {
	switch cfg.Telegram.Mode {
	case "webhook":
		if err := telegram.SetWebhook(ctx, tg, cfg.Telegram.WebhookURL, log); err != nil {
			log.Error("Failed to register webhook", "error", err)
			return nil, err
		}
		return server.New(server.Options{
			Addr:            cfg.HTTP.Addr,
			WebhookPath:     cfg.HTTP.WebhookPath,
			ReadTimeout:     cfg.HTTP.ReadTimeout,
			WriteTimeout:    cfg.HTTP.WriteTimeout,
			ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
			Registry:        registry,
		}, processor, store, log), nil
	case "polling":
		if err := telegram.DeleteWebhook(ctx, tg, false, log); err != nil {
			log.Error("Failed to remove webhook before polling", "error", err)
			return nil, err
		}
		return bot.NewPoller(tg, log), nil
	default:
		return nil, fmt.Errorf("unknown telegram mode %q", cfg.Telegram.Mode)
	}
}
