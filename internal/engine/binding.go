package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edgard/stickerbot/internal/database"
	"github.com/edgard/stickerbot/internal/i18n"
)

// BindFlow is the two-step "bind a word to the next sticker" state machine.
// A chat is idle while its pending word is empty and awaits a sticker otherwise;
// the next message event always returns it to idle.
type BindFlow struct {
	chats   ChatStore
	catalog StickerCatalog
	logger  *slog.Logger
}

// NewBindFlow creates the bind state machine.
func NewBindFlow(chats ChatStore, catalog StickerCatalog, logger *slog.Logger) *BindFlow {
	return &BindFlow{chats: chats, catalog: catalog, logger: logger}
}

// Begin handles /bind: it stores the phrase as the chat's pending word.
func (f *BindFlow) Begin(ctx context.Context, chat *database.Chat, args []string, tr i18n.Printer) (Response, error) {
	if len(args) == 0 {
		return textResponse(chat.ID, tr.T(i18n.BindEmpty)), nil
	}

	chat.PendingBindWord = strings.Join(args, " ")
	if err := f.chats.SaveChat(ctx, chat); err != nil {
		return Response{}, fmt.Errorf("store pending bind word: %w", err)
	}

	f.logger.DebugContext(ctx, "Bind started", "chat_id", chat.ID, "word", chat.PendingBindWord)
	return textResponse(chat.ID, tr.T(i18n.BindInit)), nil
}

// Complete consumes the message that follows /bind. A sticker is bound to the
// lower-cased pending word; anything else aborts the bind with a notice.
//
// The binding is written and the pending word cleared in one store transaction, so a
// failed write leaves the chat awaiting a sticker and a redelivered event can retry.
func (f *BindFlow) Complete(ctx context.Context, chat *database.Chat, msg *Message, tr i18n.Printer) (Response, error) {
	if msg.Kind != MessageSticker {
		chat.PendingBindWord = ""
		if err := f.chats.SaveChat(ctx, chat); err != nil {
			return Response{}, fmt.Errorf("clear pending bind word: %w", err)
		}

		f.logger.DebugContext(ctx, "Bind aborted by non-sticker message", "chat_id", chat.ID, "kind", msg.Kind)
		resp := textResponse(chat.ID, tr.T(i18n.NotSticker))
		resp.ReplyTo = msg.ID
		return resp, nil
	}

	if _, err := f.catalog.SaveSticker(ctx, chat.ID, msg.StickerID); err != nil {
		return Response{}, fmt.Errorf("save bound sticker: %w", err)
	}

	word := Normalize(chat.PendingBindWord)
	if err := f.catalog.BindWord(ctx, chat.ID, word, msg.StickerID); err != nil {
		return Response{}, fmt.Errorf("bind word: %w", err)
	}
	chat.PendingBindWord = ""

	f.logger.InfoContext(ctx, "Bind completed", "chat_id", chat.ID, "word", word, "sticker_id", msg.StickerID)
	return textResponse(chat.ID, tr.T(i18n.BindSuccess)), nil
}
