package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/stickerbot/internal/database"
	"github.com/edgard/stickerbot/internal/i18n"
)

// failingBindCatalog wraps a real store and fails every BindWord call.
type failingBindCatalog struct {
	database.Store
}

var errBindFailed = errors.New("bind failed")

func (failingBindCatalog) BindWord(context.Context, int64, string, string) error {
	return errBindFailed
}

func TestBindFlowBegin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	tr := i18n.For(i18n.English)
	flow := NewBindFlow(store, store, discardLogger())

	chat, err := store.CreateChat(ctx, &database.Chat{ID: 3, Language: i18n.English, Probability: 1})
	require.NoError(t, err)

	resp, err := flow.Begin(ctx, chat, nil, tr)
	require.NoError(t, err)
	assert.Equal(t, tr.T(i18n.BindEmpty), resp.Text)
	assert.False(t, chat.AwaitingSticker())

	resp, err = flow.Begin(ctx, chat, []string{"Good", "Morning"}, tr)
	require.NoError(t, err)
	assert.Equal(t, tr.T(i18n.BindInit), resp.Text)

	stored, err := store.GetChat(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Good Morning", stored.PendingBindWord)
}

func TestBindFlowCompleteLowercasesWord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	tr := i18n.For(i18n.English)
	flow := NewBindFlow(store, store, discardLogger())

	chat, err := store.CreateChat(ctx, &database.Chat{ID: 3, Language: i18n.English, Probability: 1})
	require.NoError(t, err)
	chat.PendingBindWord = "Good Morning"
	require.NoError(t, store.SaveChat(ctx, chat))

	resp, err := flow.Complete(ctx, chat, &Message{ID: 8, Kind: MessageSticker, StickerID: "S1"}, tr)
	require.NoError(t, err)
	assert.Equal(t, tr.T(i18n.BindSuccess), resp.Text)
	assert.False(t, chat.AwaitingSticker())

	bindings, err := store.ListWordBindings(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []database.WordBinding{{Word: "good morning", StickerID: "S1"}}, bindings)

	stored, err := store.GetChat(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, stored.PendingBindWord)
}

func TestBindFlowCompleteFailureKeepsPendingWord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	catalog := failingBindCatalog{Store: store}
	flow := NewBindFlow(store, catalog, discardLogger())

	chat, err := store.CreateChat(ctx, &database.Chat{ID: 4, Language: i18n.English, Probability: 1, PendingBindWord: "lol"})
	require.NoError(t, err)
	chat.PendingBindWord = "lol"
	require.NoError(t, store.SaveChat(ctx, chat))

	_, err = flow.Complete(ctx, chat, &Message{ID: 1, Kind: MessageSticker, StickerID: "S1"}, i18n.For(i18n.English))
	require.ErrorIs(t, err, errBindFailed)

	stored, err := store.GetChat(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "lol", stored.PendingBindWord)
}

func TestBindFlowCompleteRejectsNonSticker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	tr := i18n.For(i18n.Russian)
	flow := NewBindFlow(store, store, discardLogger())

	chat, err := store.CreateChat(ctx, &database.Chat{ID: 5, Language: i18n.Russian, Probability: 1})
	require.NoError(t, err)
	chat.PendingBindWord = "привет"
	require.NoError(t, store.SaveChat(ctx, chat))

	resp, err := flow.Complete(ctx, chat, &Message{ID: 21, Kind: MessageText, Text: "not a sticker"}, tr)
	require.NoError(t, err)
	assert.Equal(t, ResponseText, resp.Kind)
	assert.Equal(t, tr.T(i18n.NotSticker), resp.Text)
	assert.Equal(t, 21, resp.ReplyTo)

	stored, err := store.GetChat(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, stored.PendingBindWord)

	bindings, err := store.ListWordBindings(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, bindings)
}
