// Package handlers adapts Telegram updates to the reply engine and delivers
// its responses through the Bot API.
package handlers

import (
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/stickerbot/internal/engine"
)

// ToEvent converts a Telegram update into an engine event. Update kinds the
// engine does not handle (edits, channel posts, ...) become EventUnknown.
func ToEvent(update *models.Update) engine.Event {
	switch {
	case update.Message != nil:
		return messageEvent(update.Message)
	case update.CallbackQuery != nil:
		return callbackEvent(update.CallbackQuery)
	default:
		return engine.Event{Type: engine.EventUnknown}
	}
}

func messageEvent(msg *models.Message) engine.Event {
	out := &engine.Message{ID: msg.ID}

	switch {
	case msg.Sticker != nil:
		out.Kind = engine.MessageSticker
		out.StickerID = msg.Sticker.FileID
	case msg.Text != "":
		out.Kind = engine.MessageText
		out.Text = msg.Text
	case len(msg.NewChatMembers) > 0:
		out.Kind = engine.MessageMemberJoined
		for _, u := range msg.NewChatMembers {
			out.Members = append(out.Members, u.Username)
		}
	case msg.LeftChatMember != nil:
		out.Kind = engine.MessageMemberLeft
		out.Members = []string{msg.LeftChatMember.Username}
	default:
		out.Kind = engine.MessageUnknown
	}

	return engine.Event{
		Type:      engine.EventMessage,
		Timestamp: time.Unix(int64(msg.Date), 0),
		Chat:      chatRef(msg.Chat),
		Message:   out,
	}
}

func callbackEvent(cq *models.CallbackQuery) engine.Event {
	ev := engine.Event{
		Type:     engine.EventCallbackQuery,
		Callback: &engine.Callback{ID: cq.ID, Data: cq.Data},
	}

	switch {
	case cq.Message.Message != nil:
		ev.Chat = chatRef(cq.Message.Message.Chat)
		ev.Callback.MessageID = cq.Message.Message.ID
	case cq.Message.InaccessibleMessage != nil:
		ev.Chat = chatRef(cq.Message.InaccessibleMessage.Chat)
		ev.Callback.MessageID = cq.Message.InaccessibleMessage.MessageID
	default:
		// Inline-mode callbacks carry no chat.
		ev.Type = engine.EventUnknown
		ev.Callback = nil
	}
	return ev
}

func chatRef(c models.Chat) engine.ChatRef {
	name := c.Title
	if name == "" {
		name = strings.TrimSpace(c.FirstName + " " + c.LastName)
	}
	if name == "" {
		name = c.Username
	}
	return engine.ChatRef{ID: c.ID, Name: name}
}
