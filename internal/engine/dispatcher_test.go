package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/stickerbot/internal/database"
	"github.com/edgard/stickerbot/internal/i18n"
)

var en = i18n.For(i18n.English)

func TestBindThenMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{draw: 0.99})

	resp := mustDispatch(t, d, textEvent(1, 10, "/bind Foo"))
	assert.Equal(t, en.T(i18n.BindInit), resp.Text)

	resp = mustDispatch(t, d, stickerEvent(1, 11, "S1"))
	assert.Equal(t, en.T(i18n.BindSuccess), resp.Text)

	resp = mustDispatch(t, d, textEvent(1, 12, "well, FOO to you"))
	assert.Equal(t, ResponseSticker, resp.Kind)
	assert.Equal(t, "S1", resp.StickerID)
	assert.Equal(t, 12, resp.ReplyTo)

	resp = mustDispatch(t, d, textEvent(1, 13, "/stats"))
	assert.Equal(t, en.T(i18n.Stats, "1", "foo"), resp.Text)

	count, err := store.CountChatStickers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBindAbortedByText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{draw: 0.99})

	mustDispatch(t, d, textEvent(1, 10, "/bind foo"))
	resp := mustDispatch(t, d, textEvent(1, 11, "/pshh"))
	assert.Equal(t, en.T(i18n.NotSticker), resp.Text)
	assert.Equal(t, 11, resp.ReplyTo)

	chat, err := store.GetChat(ctx, 1)
	require.NoError(t, err)
	assert.False(t, chat.AwaitingSticker())
}

func TestStaleMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{})

	ev := stickerEvent(2, 1, "old-sticker")
	ev.Timestamp = testNow.Add(-10 * time.Minute)
	resp := mustDispatch(t, d, ev)
	assert.True(t, resp.Empty())

	count, err := store.CountChatStickers(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ev = textEvent(2, 2, "/pshh")
	ev.Timestamp = testNow.Add(-301 * time.Second)
	assert.True(t, mustDispatch(t, d, ev).Empty())

	ev = textEvent(2, 3, "/pshh")
	ev.Timestamp = testNow.Add(-300 * time.Second)
	assert.False(t, mustDispatch(t, d, ev).Empty())
}

func TestChanceCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantText  string
		wantProba float64
	}{
		{name: "missing value", text: "/chance", wantText: en.T(i18n.SetChanceJunk, 0, 50), wantProba: 1},
		{name: "not a number", text: "/chance lots", wantText: en.T(i18n.SetChanceJunk, 0, 50), wantProba: 1},
		{name: "above range", text: "/chance 51", wantText: en.T(i18n.SetChanceLimit, 0, 50), wantProba: 1},
		{name: "below range", text: "/chance -1", wantText: en.T(i18n.SetChanceLimit, 0, 50), wantProba: 1},
		{name: "nan", text: "/chance NaN", wantText: en.T(i18n.SetChanceLimit, 0, 50), wantProba: 1},
		{name: "in range", text: "/chance 25", wantText: en.T(i18n.SetChanceSuccess, "25"), wantProba: 0.25},
		{name: "upper bound", text: "/chance 50", wantText: en.T(i18n.SetChanceSuccess, "50"), wantProba: 0.5},
		{name: "zero", text: "/chance 0", wantText: en.T(i18n.SetChanceSuccess, "0"), wantProba: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := newTestStore(t)
			d := newTestDispatcher(t, store, fixedRand{})

			resp := mustDispatch(t, d, textEvent(9, 1, tc.text))
			assert.Equal(t, ResponseText, resp.Kind)
			assert.Equal(t, tc.wantText, resp.Text)

			chat, err := store.GetChat(context.Background(), 9)
			require.NoError(t, err)
			assert.InDelta(t, tc.wantProba, chat.Probability, 1e-9)
		})
	}
}

func TestUnbindCommand(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{draw: 0.99})

	mustDispatch(t, d, textEvent(1, 1, "/bind good night"))
	mustDispatch(t, d, stickerEvent(1, 2, "S1"))

	resp := mustDispatch(t, d, textEvent(1, 3, "/unbind"))
	assert.Equal(t, en.T(i18n.UnbindEmpty), resp.Text)

	resp = mustDispatch(t, d, textEvent(1, 4, "/unbind Good Night"))
	assert.Equal(t, en.T(i18n.UnbindJunk, "Good Night"), resp.Text)

	resp = mustDispatch(t, d, textEvent(1, 5, "/unbind good night"))
	assert.Equal(t, en.T(i18n.UnbindSuccess), resp.Text)

	bindings, err := store.ListWordBindings(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, bindings)
}

func TestCommandAddressing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SyncStandardPack(ctx, []string{"std-a"}))
	d := newTestDispatcher(t, store, fixedRand{draw: 0.5})

	mustDispatch(t, d, textEvent(1, 1, "/chance 0"))

	resp := mustDispatch(t, d, textEvent(1, 2, "/pshh@OtherBot"))
	assert.True(t, resp.Empty(), "command for another bot is plain text and the gate is closed")

	resp = mustDispatch(t, d, textEvent(1, 3, "/pshh@StickerBot"))
	assert.Equal(t, ResponseSticker, resp.Kind)
	assert.Equal(t, "std-a", resp.StickerID)

	resp = mustDispatch(t, d, textEvent(1, 4, "/PSHH"))
	assert.True(t, resp.Empty(), "command tokens are case-sensitive")

	resp = mustDispatch(t, d, textEvent(1, 5, "/BIND foo"))
	assert.True(t, resp.Empty())
	chat, err := store.GetChat(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, chat.PendingBindWord)
}

func TestHelpAndLanguageCommands(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{})

	resp := mustDispatch(t, d, textEvent(1, 1, "/help"))
	assert.Equal(t, ParseModeHTML, resp.ParseMode)
	assert.True(t, resp.DisableLinkPreview)
	assert.Equal(t, en.T(i18n.Help), resp.Text)

	resp = mustDispatch(t, d, textEvent(1, 2, "/language"))
	assert.Equal(t, en.T(i18n.ChooseLanguage), resp.Text)
	require.Len(t, resp.Keyboard, 1)
	assert.Equal(t, []Button{{Label: "English", Data: i18n.English}, {Label: "Русский", Data: i18n.Russian}}, resp.Keyboard[0])
}

func TestLanguageCallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{})

	callback := func(data string) Event {
		return Event{
			Type:     EventCallbackQuery,
			Chat:     ChatRef{ID: 4},
			Callback: &Callback{ID: "cb-1", Data: data, MessageID: 77},
		}
	}

	resp := mustDispatch(t, d, callback("klingon"))
	assert.True(t, resp.Empty())
	assert.Equal(t, "cb-1", resp.CallbackQueryID)

	resp = mustDispatch(t, d, callback(i18n.Russian))
	assert.Equal(t, ResponseEdit, resp.Kind)
	assert.Equal(t, 77, resp.EditMessageID)
	assert.Equal(t, "cb-1", resp.CallbackQueryID)
	assert.Equal(t, i18n.For(i18n.Russian).T(i18n.LanguageChanged), resp.Text)

	chat, err := store.GetChat(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, i18n.Russian, chat.Language)
}

func TestMembershipEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{draw: 0.99})

	membership := func(kind MessageKind, members ...string) Event {
		return Event{
			Type:      EventMessage,
			Timestamp: testNow,
			Chat:      ChatRef{ID: 6, Name: "group"},
			Message:   &Message{ID: 1, Kind: kind, Members: members},
		}
	}

	resp := mustDispatch(t, d, membership(MessageMemberJoined, "stickerbot"))
	assert.Equal(t, en.T(i18n.ChooseLanguage), resp.Text)
	assert.NotEmpty(t, resp.Keyboard)

	// Pool is empty, so other members produce nothing.
	assert.True(t, mustDispatch(t, d, membership(MessageMemberJoined, "alice")).Empty())
	assert.True(t, mustDispatch(t, d, membership(MessageMemberLeft, "alice")).Empty())

	_, err := store.SaveSticker(ctx, 6, "S1")
	require.NoError(t, err)

	resp = mustDispatch(t, d, membership(MessageMemberLeft, "stickerbot"))
	assert.True(t, resp.Empty())

	_, err = store.GetChat(ctx, 6)
	require.ErrorIs(t, err, database.ErrNotFound)
	count, err := store.CountChatStickers(ctx, 6)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStickerMessageSavesAfterDraw(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{draw: 0})

	// The pool is drawn before the incoming sticker is saved.
	resp := mustDispatch(t, d, stickerEvent(8, 1, "S1"))
	assert.True(t, resp.Empty())

	resp = mustDispatch(t, d, stickerEvent(8, 2, "S2"))
	assert.Equal(t, "S1", resp.StickerID)

	ids, err := store.ChatStickerIDs(ctx, 8)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"S1", "S2"}, ids)
}

func TestUnknownEventHasNoSideEffects(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	d := newTestDispatcher(t, store, fixedRand{})

	resp := mustDispatch(t, d, Event{Type: EventUnknown, Chat: ChatRef{ID: 12}})
	assert.True(t, resp.Empty())

	_, err := store.GetChat(context.Background(), 12)
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		wantToken string
		wantArgs  []string
		wantOK    bool
	}{
		{text: "/bind foo  bar", wantToken: "/bind", wantArgs: []string{"foo", "bar"}, wantOK: true},
		{text: "/STATS", wantToken: "/STATS", wantArgs: []string{}, wantOK: true},
		{text: "/help@stickerbot", wantToken: "/help", wantArgs: []string{}, wantOK: true},
		{text: "/help@otherbot", wantOK: false},
		{text: "hello /help", wantOK: false},
		{text: "", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			token, args, ok := ParseCommand(tc.text, "stickerbot")
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantToken, token)
				assert.Equal(t, tc.wantArgs, args)
			}
		})
	}
}
