// Package engine decides how the bot answers a single chat event. It classifies the
// event, runs the per-chat bind state machine, routes commands, matches bound words,
// and applies the probability-gated random sticker policy. Every call produces at most
// one Response; persistence goes through the Store interface.
package engine

import "time"

// EventType discriminates the top-level update kinds the engine understands.
type EventType int

const (
	EventUnknown EventType = iota
	EventMessage
	EventCallbackQuery
)

func (t EventType) String() string {
	switch t {
	case EventMessage:
		return "message"
	case EventCallbackQuery:
		return "callback_query"
	default:
		return "unknown"
	}
}

// MessageKind is the sub-kind of a message event.
type MessageKind int

const (
	MessageUnknown MessageKind = iota
	MessageText
	MessageSticker
	MessageMemberLeft
	MessageMemberJoined
)

func (k MessageKind) String() string {
	switch k {
	case MessageText:
		return "text"
	case MessageSticker:
		return "sticker"
	case MessageMemberLeft:
		return "member_left"
	case MessageMemberJoined:
		return "member_joined"
	default:
		return "unknown"
	}
}

// ChatRef identifies the chat an event belongs to.
type ChatRef struct {
	ID   int64
	Name string
}

// Message is the payload of a message event.
type Message struct {
	ID        int
	Kind      MessageKind
	Text      string
	StickerID string
	// Members holds the usernames that joined or left, for membership events.
	Members []string
}

// Callback is the payload of an inline button press.
type Callback struct {
	ID   string
	Data string
	// MessageID is the message carrying the pressed keyboard.
	MessageID int
}

// Event is one parsed inbound update.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Chat      ChatRef
	Message   *Message
	Callback  *Callback
}
