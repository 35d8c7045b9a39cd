package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store defines the database operations used by the bot.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetChat returns the chat with the given id, or ErrNotFound.
	GetChat(ctx context.Context, chatID int64) (*Chat, error)
	// CreateChat inserts chat unless a row with the same id already exists,
	// and returns the stored row either way.
	CreateChat(ctx context.Context, chat *Chat) (*Chat, error)
	// SaveChat upserts all mutable chat fields.
	SaveChat(ctx context.Context, chat *Chat) error
	// DeleteChat removes the chat together with its seen stickers and word bindings.
	DeleteChat(ctx context.Context, chatID int64) error

	// SaveSticker records that the chat has seen the sticker, creating the global
	// sticker row on first sight. Idempotent per (chat, sticker).
	SaveSticker(ctx context.Context, chatID int64, fileID string) (*Sticker, error)
	// BindWord points the chat's binding for word at the sticker and clears the
	// chat's pending bind word in the same transaction.
	BindWord(ctx context.Context, chatID int64, word, fileID string) error
	// UnbindWord deletes the chat's bindings for word and returns the number removed.
	UnbindWord(ctx context.Context, chatID int64, word string) (int64, error)
	// CountChatStickers returns the number of distinct stickers the chat knows.
	CountChatStickers(ctx context.Context, chatID int64) (int, error)
	// ListWordBindings returns the chat's bound words with their sticker file ids.
	ListWordBindings(ctx context.Context, chatID int64) ([]WordBinding, error)
	// ChatStickerIDs returns the file ids of every sticker the chat knows.
	ChatStickerIDs(ctx context.Context, chatID int64) ([]string, error)
	// StandardStickerIDs returns the file ids of the standard pack.
	StandardStickerIDs(ctx context.Context) ([]string, error)
	// SyncStandardPack makes fileIDs the exact standard pack.
	SyncStandardPack(ctx context.Context, fileIDs []string) error

	// Stats returns global row counts.
	Stats(ctx context.Context) (CatalogStats, error)
	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// inTx runs fn inside a transaction, rolling back unless fn and the commit succeed.
func (s *sqlxStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Stats returns global row counts for chats, stickers, and word bindings.
func (s *sqlxStore) Stats(ctx context.Context) (CatalogStats, error) {
	var stats CatalogStats
	query := `
		SELECT
			(SELECT COUNT(*) FROM chats)         AS chats,
			(SELECT COUNT(*) FROM stickers)      AS stickers,
			(SELECT COUNT(*) FROM word_bindings) AS bindings`
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return CatalogStats{}, fmt.Errorf("failed to count catalog rows: %w", err)
	}
	return stats, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}
