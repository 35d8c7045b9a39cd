package database

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested chat does not exist.
var ErrNotFound = errors.New("not found")

// Chat is the per-chat state: language, trigger probability, and the pending bind word.
// An empty PendingBindWord means the chat is idle; otherwise the next message completes
// or aborts a bind.
type Chat struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	Language        string    `db:"language"`
	Probability     float64   `db:"probability"`
	PendingBindWord string    `db:"pending_bind_word"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// AwaitingSticker reports whether the chat has a bind in progress.
func (c *Chat) AwaitingSticker() bool {
	return c.PendingBindWord != ""
}

// Sticker is a globally shared sticker, identified by the platform file id.
type Sticker struct {
	ID        int64     `db:"id"`
	FileID    string    `db:"file_id"`
	Standard  bool      `db:"standard"`
	CreatedAt time.Time `db:"created_at"`
}

// WordBinding is a word bound to a sticker within one chat.
type WordBinding struct {
	Word      string `db:"word"`
	StickerID string `db:"file_id"`
}

// CatalogStats holds global row counts used for metrics.
type CatalogStats struct {
	Chats    int64 `db:"chats"`
	Stickers int64 `db:"stickers"`
	Bindings int64 `db:"bindings"`
}
