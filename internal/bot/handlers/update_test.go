package handlers

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/stickerbot/internal/engine"
)

func TestToEvent(t *testing.T) {
	t.Parallel()

	group := models.Chat{ID: -100, Title: "Friends"}

	tests := []struct {
		name     string
		update   *models.Update
		wantType engine.EventType
		wantKind engine.MessageKind
		check    func(t *testing.T, ev engine.Event)
	}{
		{
			name:     "text",
			update:   &models.Update{Message: &models.Message{ID: 1, Date: 1700000000, Chat: group, Text: "hello"}},
			wantType: engine.EventMessage,
			wantKind: engine.MessageText,
			check: func(t *testing.T, ev engine.Event) {
				assert.Equal(t, "hello", ev.Message.Text)
				assert.Equal(t, time.Unix(1700000000, 0), ev.Timestamp)
				assert.Equal(t, engine.ChatRef{ID: -100, Name: "Friends"}, ev.Chat)
			},
		},
		{
			name:     "sticker",
			update:   &models.Update{Message: &models.Message{ID: 2, Chat: group, Sticker: &models.Sticker{FileID: "CAAC1"}}},
			wantType: engine.EventMessage,
			wantKind: engine.MessageSticker,
			check: func(t *testing.T, ev engine.Event) {
				assert.Equal(t, "CAAC1", ev.Message.StickerID)
			},
		},
		{
			name: "members joined",
			update: &models.Update{Message: &models.Message{ID: 3, Chat: group, NewChatMembers: []models.User{
				{ID: 1, Username: "alice"}, {ID: 2, Username: "stickerbot"},
			}}},
			wantType: engine.EventMessage,
			wantKind: engine.MessageMemberJoined,
			check: func(t *testing.T, ev engine.Event) {
				assert.Equal(t, []string{"alice", "stickerbot"}, ev.Message.Members)
			},
		},
		{
			name:     "member left",
			update:   &models.Update{Message: &models.Message{ID: 4, Chat: group, LeftChatMember: &models.User{Username: "bob"}}},
			wantType: engine.EventMessage,
			wantKind: engine.MessageMemberLeft,
			check: func(t *testing.T, ev engine.Event) {
				assert.Equal(t, []string{"bob"}, ev.Message.Members)
			},
		},
		{
			name:     "photo is an unknown message kind",
			update:   &models.Update{Message: &models.Message{ID: 5, Chat: group, Photo: []models.PhotoSize{{FileID: "p"}}}},
			wantType: engine.EventMessage,
			wantKind: engine.MessageUnknown,
		},
		{
			name:     "private chat name",
			update:   &models.Update{Message: &models.Message{ID: 6, Chat: models.Chat{ID: 5, FirstName: "Ann", LastName: "Lee"}, Text: "x"}},
			wantType: engine.EventMessage,
			wantKind: engine.MessageText,
			check: func(t *testing.T, ev engine.Event) {
				assert.Equal(t, "Ann Lee", ev.Chat.Name)
			},
		},
		{
			name: "callback on accessible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				ID:   "cb1",
				Data: "russian",
				Message: models.MaybeInaccessibleMessage{
					Type:    models.MaybeInaccessibleMessageTypeMessage,
					Message: &models.Message{ID: 40, Chat: group},
				},
			}},
			wantType: engine.EventCallbackQuery,
			check: func(t *testing.T, ev engine.Event) {
				require.NotNil(t, ev.Callback)
				assert.Equal(t, engine.Callback{ID: "cb1", Data: "russian", MessageID: 40}, *ev.Callback)
				assert.Equal(t, int64(-100), ev.Chat.ID)
			},
		},
		{
			name: "callback on inaccessible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				ID:   "cb2",
				Data: "english",
				Message: models.MaybeInaccessibleMessage{
					Type:                models.MaybeInaccessibleMessageTypeInaccessibleMessage,
					InaccessibleMessage: &models.InaccessibleMessage{Chat: group, MessageID: 41},
				},
			}},
			wantType: engine.EventCallbackQuery,
			check: func(t *testing.T, ev engine.Event) {
				assert.Equal(t, 41, ev.Callback.MessageID)
				assert.Equal(t, int64(-100), ev.Chat.ID)
			},
		},
		{
			name:     "edited message",
			update:   &models.Update{EditedMessage: &models.Message{ID: 9, Chat: group, Text: "edit"}},
			wantType: engine.EventUnknown,
		},
		{
			name:     "channel post",
			update:   &models.Update{ChannelPost: &models.Message{ID: 10, Chat: group, Text: "post"}},
			wantType: engine.EventUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ev := ToEvent(tc.update)
			assert.Equal(t, tc.wantType, ev.Type)
			if tc.wantType == engine.EventMessage {
				require.NotNil(t, ev.Message)
				assert.Equal(t, tc.wantKind, ev.Message.Kind)
			}
			if tc.check != nil {
				tc.check(t, ev)
			}
		})
	}
}
