package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"
)

const chatColumns = `id, name, language, probability, pending_bind_word, created_at, updated_at`

// GetChat retrieves a chat by its platform id. Returns ErrNotFound if absent.
func (s *sqlxStore) GetChat(ctx context.Context, chatID int64) (*Chat, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var chat Chat
	err := s.db.GetContext(ctx, &chat, `SELECT `+chatColumns+` FROM chats WHERE id = ?`, chatID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No chat found", "chat_id", chatID)
		return nil, ErrNotFound

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching chat", "chat_id", chatID, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting chat by ID", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get chat %d: %w", chatID, err)
	}

	return &chat, nil
}

// CreateChat inserts the chat if no row with its id exists yet and returns the stored row.
// Concurrent creators of the same id both end up with the single stored row.
func (s *sqlxStore) CreateChat(ctx context.Context, chat *Chat) (*Chat, error) {
	if chat == nil {
		return nil, fmt.Errorf("cannot create nil chat")
	}
	if err := validateProbability(chat.Probability); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	query := `
		INSERT INTO chats (` + chatColumns + `)
		VALUES (:id, :name, :language, :probability, :pending_bind_word, :created_at, :updated_at)
		ON CONFLICT (id) DO NOTHING`

	result, err := s.db.NamedExecContext(ctx, query, chat)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error creating chat", "chat_id", chat.ID, "error", err)
		return nil, fmt.Errorf("failed to create chat %d: %w", chat.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 1 {
		s.logger.InfoContext(ctx, "Chat created", "chat_id", chat.ID, "name", chat.Name)
	}

	return s.GetChat(ctx, chat.ID)
}

// SaveChat upserts all mutable fields of the chat.
func (s *sqlxStore) SaveChat(ctx context.Context, chat *Chat) error {
	if chat == nil {
		return fmt.Errorf("cannot save nil chat")
	}
	if err := validateProbability(chat.Probability); err != nil {
		return err
	}

	now := time.Now().UTC()
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = now
	}
	chat.UpdatedAt = now

	query := `
		INSERT INTO chats (` + chatColumns + `)
		VALUES (:id, :name, :language, :probability, :pending_bind_word, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			language = excluded.language,
			probability = excluded.probability,
			pending_bind_word = excluded.pending_bind_word,
			updated_at = excluded.updated_at`

	if _, err := s.db.NamedExecContext(ctx, query, chat); err != nil {
		s.logger.ErrorContext(ctx, "Error saving chat", "chat_id", chat.ID, "error", err)
		return fmt.Errorf("failed to save chat %d: %w", chat.ID, err)
	}

	s.logger.DebugContext(ctx, "Chat saved",
		"chat_id", chat.ID,
		"language", chat.Language,
		"probability", chat.Probability,
		"pending_bind", chat.AwaitingSticker())
	return nil
}

// DeleteChat removes the chat; seen stickers and word bindings go with it via cascade.
func (s *sqlxStore) DeleteChat(ctx context.Context, chatID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting chat", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to delete chat %d: %w", chatID, err)
	}

	affected, _ := result.RowsAffected()
	s.logger.InfoContext(ctx, "Chat deleted", "chat_id", chatID, "affected", affected)
	return nil
}

func validateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("probability %v outside [0, 1]", p)
	}
	return nil
}
