package engine

// ResponseKind selects the outgoing platform action.
type ResponseKind int

const (
	ResponseNone ResponseKind = iota
	ResponseSticker
	ResponseText
	ResponseEdit
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseSticker:
		return "sticker"
	case ResponseText:
		return "text"
	case ResponseEdit:
		return "edit"
	default:
		return "none"
	}
}

// ParseModeHTML marks Text as HTML markup.
const ParseModeHTML = "HTML"

// Button is one inline keyboard button.
type Button struct {
	Label string
	Data  string
}

// Response describes the single action to perform for an event.
// The zero value sends nothing.
type Response struct {
	Kind   ResponseKind
	ChatID int64
	// ReplyTo threads the outgoing message under this message id; 0 sends it standalone.
	ReplyTo            int
	Text               string
	ParseMode          string
	Keyboard           [][]Button
	StickerID          string
	DisableLinkPreview bool
	// EditMessageID is the message whose text is replaced for ResponseEdit.
	EditMessageID int
	// CallbackQueryID is acknowledged regardless of Kind when set.
	CallbackQueryID string
}

// Empty reports whether the response sends no chat message.
func (r Response) Empty() bool {
	return r.Kind == ResponseNone
}

func stickerResponse(chatID int64, stickerID string, replyTo int) Response {
	return Response{Kind: ResponseSticker, ChatID: chatID, StickerID: stickerID, ReplyTo: replyTo}
}

func textResponse(chatID int64, text string) Response {
	return Response{Kind: ResponseText, ChatID: chatID, Text: text}
}
