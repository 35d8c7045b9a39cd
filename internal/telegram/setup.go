// Package telegram creates the Bot API client and manages bot-level settings:
// the command menu and the webhook registration.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Commands is the command menu shown by Telegram clients.
var Commands = []models.BotCommand{
	{Command: "pshh", Description: "Send a random sticker"},
	{Command: "chance", Description: "Set the reply chance in percent"},
	{Command: "bind", Description: "Bind a word to the next sticker"},
	{Command: "unbind", Description: "Remove a bound word"},
	{Command: "stats", Description: "Show known stickers and bound words"},
	{Command: "language", Description: "Change the language"},
	{Command: "help", Description: "Show help"},
}

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", tokenPrefix(token))
	return b, nil
}

// RegisterCommands publishes the command menu.
func RegisterCommands(ctx context.Context, b *bot.Bot, logger *slog.Logger) error {
	ok, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: Commands})
	if err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	if !ok {
		return fmt.Errorf("telegram rejected the command list")
	}
	logger.Info("Registered bot commands", "count", len(Commands))
	return nil
}

// SetWebhook points Telegram at url. Pending updates are kept so nothing sent
// while the bot was down is lost.
func SetWebhook(ctx context.Context, b *bot.Bot, url string, logger *slog.Logger) error {
	ok, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:            url,
		AllowedUpdates: []string{"message", "callback_query"},
	})
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	if !ok {
		return fmt.Errorf("telegram rejected the webhook")
	}
	logger.Info("Webhook registered", "url", url)
	return nil
}

// DeleteWebhook removes the webhook, which polling mode requires.
func DeleteWebhook(ctx context.Context, b *bot.Bot, dropPending bool, logger *slog.Logger) error {
	ok, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: dropPending})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	if !ok {
		return fmt.Errorf("telegram rejected the webhook removal")
	}
	logger.Info("Webhook removed", "drop_pending_updates", dropPending)
	return nil
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}
