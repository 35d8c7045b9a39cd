package engine

import (
	"context"

	"github.com/edgard/stickerbot/internal/database"
)

// ChatStore persists per-chat state.
type ChatStore interface {
	GetChat(ctx context.Context, chatID int64) (*database.Chat, error)
	CreateChat(ctx context.Context, chat *database.Chat) (*database.Chat, error)
	SaveChat(ctx context.Context, chat *database.Chat) error
	DeleteChat(ctx context.Context, chatID int64) error
}

// StickerCatalog persists the global sticker pool and per-chat sticker knowledge.
type StickerCatalog interface {
	SaveSticker(ctx context.Context, chatID int64, fileID string) (*database.Sticker, error)
	BindWord(ctx context.Context, chatID int64, word, fileID string) error
	UnbindWord(ctx context.Context, chatID int64, word string) (int64, error)
	CountChatStickers(ctx context.Context, chatID int64) (int, error)
	ListWordBindings(ctx context.Context, chatID int64) ([]database.WordBinding, error)
	ChatStickerIDs(ctx context.Context, chatID int64) ([]string, error)
	StandardStickerIDs(ctx context.Context) ([]string, error)
}

// Store is everything the dispatcher needs from persistence.
type Store interface {
	ChatStore
	StickerCatalog
}
