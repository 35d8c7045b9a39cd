package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edgard/stickerbot/internal/database"
)

// ResponsePolicy picks random stickers. Chats that know few stickers draw from the
// standard pack plus their own; chats past the threshold draw from their own only.
type ResponsePolicy struct {
	catalog   StickerCatalog
	rand      Rand
	threshold int
	reply     bool
	logger    *slog.Logger
}

// NewResponsePolicy creates a policy. threshold is the largest known-sticker count
// that still mixes in the standard pack.
func NewResponsePolicy(catalog StickerCatalog, rnd Rand, threshold int, reply bool, logger *slog.Logger) *ResponsePolicy {
	return &ResponsePolicy{
		catalog:   catalog,
		rand:      rnd,
		threshold: threshold,
		reply:     reply,
		logger:    logger,
	}
}

// Trigger draws against the chat's probability.
func (p *ResponsePolicy) Trigger(chat *database.Chat) bool {
	return p.rand.Float64() <= chat.Probability
}

// SendRandom returns a random sticker for the chat, or an empty response when the
// gate is closed or the pool is empty. replyTo is the triggering message id.
func (p *ResponsePolicy) SendRandom(ctx context.Context, chat *database.Chat, replyTo int, gated bool) (Response, error) {
	if gated && !p.Trigger(chat) {
		return Response{}, nil
	}

	pool, err := p.Pool(ctx, chat.ID)
	if err != nil {
		return Response{}, err
	}
	if len(pool) == 0 {
		p.logger.DebugContext(ctx, "Sticker pool is empty", "chat_id", chat.ID)
		return Response{}, nil
	}

	sticker := pool[p.rand.IntN(len(pool))]
	return stickerResponse(chat.ID, sticker, p.replyTo(replyTo)), nil
}

// StickerReply answers with a known sticker, threaded when replies are enabled.
func (p *ResponsePolicy) StickerReply(chatID int64, stickerID string, replyTo int) Response {
	return stickerResponse(chatID, stickerID, p.replyTo(replyTo))
}

// Pool returns the distinct sticker ids the chat may draw from.
func (p *ResponsePolicy) Pool(ctx context.Context, chatID int64) ([]string, error) {
	count, err := p.catalog.CountChatStickers(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("count chat stickers: %w", err)
	}

	own, err := p.catalog.ChatStickerIDs(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list chat stickers: %w", err)
	}
	if count > p.threshold {
		return dedupe(own), nil
	}

	standard, err := p.catalog.StandardStickerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standard stickers: %w", err)
	}
	return dedupe(append(standard, own...)), nil
}

func (p *ResponsePolicy) replyTo(messageID int) int {
	if !p.reply {
		return 0
	}
	return messageID
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
