package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/stickerbot/internal/engine"
)

// Sender is the subset of the Bot API used to deliver responses. *bot.Bot implements it.
type Sender interface {
	SendSticker(ctx context.Context, params *bot.SendStickerParams) (*models.Message, error)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// API method names, used as metric labels.
const (
	methodSendSticker         = "sendSticker"
	methodSendMessage         = "sendMessage"
	methodEditMessageText     = "editMessageText"
	methodAnswerCallbackQuery = "answerCallbackQuery"
)

// deliverError names the API method that failed.
type deliverError struct {
	method string
	err    error
}

func (e *deliverError) Error() string { return fmt.Sprintf("%s: %v", e.method, e.err) }
func (e *deliverError) Unwrap() error { return e.err }

// Deliver performs the single API call described by resp, then acknowledges the
// callback query when resp carries one.
func Deliver(ctx context.Context, s Sender, resp engine.Response) error {
	var err error
	switch resp.Kind {
	case engine.ResponseSticker:
		_, err = s.SendSticker(ctx, stickerParams(resp))
		err = wrapDeliver(methodSendSticker, err)
	case engine.ResponseText:
		_, err = s.SendMessage(ctx, messageParams(resp))
		err = wrapDeliver(methodSendMessage, err)
	case engine.ResponseEdit:
		_, err = s.EditMessageText(ctx, editParams(resp))
		err = wrapDeliver(methodEditMessageText, err)
	}
	if err != nil {
		return err
	}

	if resp.CallbackQueryID != "" {
		_, err := s.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: resp.CallbackQueryID})
		return wrapDeliver(methodAnswerCallbackQuery, err)
	}
	return nil
}

func wrapDeliver(method string, err error) error {
	if err == nil {
		return nil
	}
	return &deliverError{method: method, err: err}
}

func stickerParams(resp engine.Response) *bot.SendStickerParams {
	return &bot.SendStickerParams{
		ChatID:          resp.ChatID,
		Sticker:         &models.InputFileString{Data: resp.StickerID},
		ReplyParameters: replyParams(resp.ReplyTo),
	}
}

func messageParams(resp engine.Response) *bot.SendMessageParams {
	params := &bot.SendMessageParams{
		ChatID:          resp.ChatID,
		Text:            resp.Text,
		ParseMode:       models.ParseMode(resp.ParseMode),
		ReplyParameters: replyParams(resp.ReplyTo),
	}
	if resp.DisableLinkPreview {
		params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: bot.True()}
	}
	if len(resp.Keyboard) > 0 {
		params.ReplyMarkup = keyboard(resp.Keyboard)
	}
	return params
}

func editParams(resp engine.Response) *bot.EditMessageTextParams {
	return &bot.EditMessageTextParams{
		ChatID:    resp.ChatID,
		MessageID: resp.EditMessageID,
		Text:      resp.Text,
		ParseMode: models.ParseMode(resp.ParseMode),
	}
}

func replyParams(messageID int) *models.ReplyParameters {
	if messageID == 0 {
		return nil
	}
	return &models.ReplyParameters{MessageID: messageID, AllowSendingWithoutReply: true}
}

func keyboard(rows [][]engine.Button) *models.InlineKeyboardMarkup {
	markup := &models.InlineKeyboardMarkup{InlineKeyboard: make([][]models.InlineKeyboardButton, 0, len(rows))}
	for _, row := range rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{Text: b.Label, CallbackData: b.Data})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}
