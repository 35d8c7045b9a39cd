package main

import (
	"errors"

	tgbot "github.com/go-telegram/bot"
	"github.com/spf13/cobra"

	"github.com/edgard/stickerbot/internal/telegram"
)

func newWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the Telegram webhook registration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [url]",
		Short: "Register the webhook (defaults to telegram.webhook_url)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			url := cfg.Telegram.WebhookURL
			if len(args) == 1 {
				url = args[0]
			}
			if url == "" {
				return errors.New("no webhook url given and telegram.webhook_url is empty")
			}

			tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, tgbot.WithSkipGetMe())
			if err != nil {
				return err
			}
			return telegram.SetWebhook(cmd.Context(), tg, url, log)
		},
	})

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dropPending, err := cmd.Flags().GetBool("drop-pending")
			if err != nil {
				return err
			}

			tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, tgbot.WithSkipGetMe())
			if err != nil {
				return err
			}
			return telegram.DeleteWebhook(cmd.Context(), tg, dropPending, log)
		},
	}
	deleteCmd.Flags().Bool("drop-pending", false, "Drop updates Telegram is still holding")
	cmd.AddCommand(deleteCmd)

	return cmd
}
