package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// chatStickersQuery selects the internal ids of every sticker a chat knows,
// whether it was only seen or is the target of a word binding.
const chatStickersQuery = `
	SELECT sticker_id FROM seen_stickers WHERE chat_id = ?
	UNION
	SELECT sticker_id FROM word_bindings WHERE chat_id = ?`

// getOrCreateSticker returns the global sticker row for fileID, inserting it on first sight.
func getOrCreateSticker(ctx context.Context, tx *sqlx.Tx, fileID string) (*Sticker, error) {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO stickers (file_id, standard, created_at) VALUES (?, 0, ?)
		 ON CONFLICT (file_id) DO NOTHING`,
		fileID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert sticker %q: %w", fileID, err)
	}

	var sticker Sticker
	if err := tx.GetContext(ctx, &sticker,
		`SELECT id, file_id, standard, created_at FROM stickers WHERE file_id = ?`, fileID); err != nil {
		return nil, fmt.Errorf("failed to load sticker %q: %w", fileID, err)
	}
	return &sticker, nil
}

// SaveSticker records the sticker as seen by the chat.
func (s *sqlxStore) SaveSticker(ctx context.Context, chatID int64, fileID string) (*Sticker, error) {
	if fileID == "" {
		return nil, fmt.Errorf("sticker file id cannot be empty")
	}

	var sticker *Sticker
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if sticker, err = getOrCreateSticker(ctx, tx, fileID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO seen_stickers (chat_id, sticker_id, created_at) VALUES (?, ?, ?)
			 ON CONFLICT (chat_id, sticker_id) DO NOTHING`,
			chatID, sticker.ID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to record seen sticker: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving sticker", "chat_id", chatID, "file_id", fileID, "error", err)
		return nil, err
	}

	s.logger.DebugContext(ctx, "Sticker saved", "chat_id", chatID, "file_id", fileID, "sticker_id", sticker.ID)
	return sticker, nil
}

// BindWord upserts the (chat, word) binding and clears the chat's pending word atomically.
// If any step fails nothing is written and the pending word stays set.
func (s *sqlxStore) BindWord(ctx context.Context, chatID int64, word, fileID string) error {
	if word == "" {
		return fmt.Errorf("cannot bind an empty word")
	}
	if fileID == "" {
		return fmt.Errorf("sticker file id cannot be empty")
	}

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		sticker, err := getOrCreateSticker(ctx, tx, fileID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO word_bindings (chat_id, word, sticker_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (chat_id, word) DO UPDATE SET
				sticker_id = excluded.sticker_id,
				updated_at = excluded.updated_at`,
			chatID, word, sticker.ID, now, now)
		if err != nil {
			return fmt.Errorf("failed to upsert word binding: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE chats SET pending_bind_word = '', updated_at = ? WHERE id = ?`, now, chatID)
		if err != nil {
			return fmt.Errorf("failed to clear pending bind word: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error binding word", "chat_id", chatID, "word", word, "file_id", fileID, "error", err)
		return err
	}

	s.logger.InfoContext(ctx, "Word bound", "chat_id", chatID, "word", word, "file_id", fileID)
	return nil
}

// UnbindWord deletes the chat's bindings whose word equals word exactly.
func (s *sqlxStore) UnbindWord(ctx context.Context, chatID int64, word string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM word_bindings WHERE chat_id = ? AND word = ?`, chatID, word)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error unbinding word", "chat_id", chatID, "word", word, "error", err)
		return 0, fmt.Errorf("failed to unbind word for chat %d: %w", chatID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read unbind result: %w", err)
	}
	return affected, nil
}

// CountChatStickers returns how many distinct stickers the chat knows.
func (s *sqlxStore) CountChatStickers(ctx context.Context, chatID int64) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM (`+chatStickersQuery+`)`, chatID, chatID); err != nil {
		return 0, fmt.Errorf("failed to count stickers for chat %d: %w", chatID, err)
	}
	return count, nil
}

// ListWordBindings returns the chat's bindings ordered by word.
func (s *sqlxStore) ListWordBindings(ctx context.Context, chatID int64) ([]WordBinding, error) {
	var bindings []WordBinding
	err := s.db.SelectContext(ctx, &bindings,
		`SELECT wb.word, s.file_id
		 FROM word_bindings wb
		 JOIN stickers s ON s.id = wb.sticker_id
		 WHERE wb.chat_id = ?
		 ORDER BY wb.word`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list word bindings for chat %d: %w", chatID, err)
	}
	return bindings, nil
}

// ChatStickerIDs returns the file ids of the stickers the chat knows.
func (s *sqlxStore) ChatStickerIDs(ctx context.Context, chatID int64) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		`SELECT file_id FROM stickers WHERE id IN (`+chatStickersQuery+`) ORDER BY id`, chatID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stickers for chat %d: %w", chatID, err)
	}
	return ids, nil
}

// StandardStickerIDs returns the file ids of the standard pack.
func (s *sqlxStore) StandardStickerIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, `SELECT file_id FROM stickers WHERE standard = 1 ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list standard stickers: %w", err)
	}
	return ids, nil
}

// SyncStandardPack replaces the standard flag set with exactly fileIDs.
func (s *sqlxStore) SyncStandardPack(ctx context.Context, fileIDs []string) error {
	ids := make([]string, 0, len(fileIDs))
	for _, id := range fileIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE stickers SET standard = 0 WHERE standard = 1`); err != nil {
			return fmt.Errorf("failed to reset standard pack: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		for _, id := range ids {
			if _, err := getOrCreateSticker(ctx, tx, id); err != nil {
				return err
			}
		}

		query, args, err := sqlx.In(`UPDATE stickers SET standard = 1 WHERE file_id IN (?)`, ids)
		if err != nil {
			return fmt.Errorf("failed to build standard pack query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("failed to mark standard pack: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error syncing standard pack", "count", len(ids), "error", err)
		return err
	}

	s.logger.InfoContext(ctx, "Standard sticker pack synced", "count", len(ids))
	return nil
}
