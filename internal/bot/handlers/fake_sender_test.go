package handlers

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// fakeSender records every API call.
type fakeSender struct {
	mu        sync.Mutex
	stickers  []*bot.SendStickerParams
	messages  []*bot.SendMessageParams
	edits     []*bot.EditMessageTextParams
	answers   []*bot.AnswerCallbackQueryParams
	sendError error
}

func (f *fakeSender) SendSticker(_ context.Context, params *bot.SendStickerParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendError != nil {
		return nil, f.sendError
	}
	f.stickers = append(f.stickers, params)
	return &models.Message{}, nil
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendError != nil {
		return nil, f.sendError
	}
	f.messages = append(f.messages, params)
	return &models.Message{}, nil
}

func (f *fakeSender) EditMessageText(_ context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendError != nil {
		return nil, f.sendError
	}
	f.edits = append(f.edits, params)
	return &models.Message{}, nil
}

func (f *fakeSender) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, params)
	return true, nil
}
