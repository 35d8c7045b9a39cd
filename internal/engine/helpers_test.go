package engine

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edgard/stickerbot/internal/database"
)

// fixedRand returns a constant draw and always picks index pick (clamped to n-1).
type fixedRand struct {
	draw float64
	pick int
}

func (r fixedRand) Float64() float64 { return r.draw }

func (r fixedRand) IntN(n int) int {
	if r.pick >= n {
		return n - 1
	}
	return r.pick
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDispatcher(t *testing.T, store database.Store, rnd Rand) *Dispatcher {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BotUsername = "stickerbot"
	return NewDispatcher(store, cfg, discardLogger(),
		WithRand(rnd),
		WithClock(func() time.Time { return testNow }),
	)
}

func textEvent(chatID int64, msgID int, text string) Event {
	return Event{
		Type:      EventMessage,
		Timestamp: testNow.Add(-time.Second),
		Chat:      ChatRef{ID: chatID, Name: "test chat"},
		Message:   &Message{ID: msgID, Kind: MessageText, Text: text},
	}
}

func stickerEvent(chatID int64, msgID int, stickerID string) Event {
	return Event{
		Type:      EventMessage,
		Timestamp: testNow.Add(-time.Second),
		Chat:      ChatRef{ID: chatID, Name: "test chat"},
		Message:   &Message{ID: msgID, Kind: MessageSticker, StickerID: stickerID},
	}
}

func mustDispatch(t *testing.T, d *Dispatcher, ev Event) Response {
	t.Helper()

	resp, err := d.Dispatch(context.Background(), ev)
	require.NoError(t, err)
	return resp
}
