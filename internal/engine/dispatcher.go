package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/stickerbot/internal/database"
	"github.com/edgard/stickerbot/internal/i18n"
)

// DefaultProbability is the trigger probability of a newly created chat.
const DefaultProbability = 1.0

// Config tunes the dispatcher.
type Config struct {
	// BotUsername is the bot's own username without the leading "@".
	BotUsername     string
	DefaultLanguage string
	// StaleAfter is the age past which message events are not answered.
	StaleAfter time.Duration
	// ChanceMin and ChanceMax bound the /chance percentage.
	ChanceMin int
	ChanceMax int
	// LocalPoolThreshold is the largest known-sticker count that still mixes in the standard pack.
	LocalPoolThreshold int
	// Reply threads sticker answers under the triggering message.
	Reply bool
}

// DefaultConfig returns the stock dispatcher settings.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage:    i18n.Default,
		StaleAfter:         300 * time.Second,
		ChanceMin:          0,
		ChanceMax:          50,
		LocalPoolThreshold: 25,
		Reply:              true,
	}
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithRand replaces the random source.
func WithRand(r Rand) Option {
	return func(d *Dispatcher) { d.rand = r }
}

// WithClock replaces the clock used for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// Dispatcher turns one Event into at most one Response.
type Dispatcher struct {
	chats    ChatStore
	catalog  StickerCatalog
	cfg      Config
	logger   *slog.Logger
	rand     Rand
	now      func() time.Time
	policy   *ResponsePolicy
	binds    *BindFlow
	commands map[string]commandHandler
}

// NewDispatcher wires the engine over store.
func NewDispatcher(store Store, cfg Config, logger *slog.Logger, opts ...Option) *Dispatcher {
	if cfg.DefaultLanguage == "" || !i18n.Supported(cfg.DefaultLanguage) {
		cfg.DefaultLanguage = i18n.Default
	}
	cfg.BotUsername = strings.TrimPrefix(cfg.BotUsername, "@")

	d := &Dispatcher{
		chats:   store,
		catalog: store,
		cfg:     cfg,
		logger:  logger.With("component", "engine"),
		rand:    CryptoRand{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.policy = NewResponsePolicy(store, d.rand, cfg.LocalPoolThreshold, cfg.Reply, d.logger)
	d.binds = NewBindFlow(store, store, d.logger)
	d.commands = d.commandTable()
	return d
}

// Dispatch handles a single event. Returned errors are infrastructure failures
// (store or internal); user mistakes are answered with a localized Response.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (Response, error) {
	switch ev.Type {
	case EventMessage:
		if ev.Message == nil {
			return Response{}, nil
		}
		return d.dispatchMessage(ctx, ev)
	case EventCallbackQuery:
		if ev.Callback == nil {
			return Response{}, nil
		}
		return d.dispatchCallback(ctx, ev)
	default:
		d.logger.DebugContext(ctx, "Ignoring unsupported event", "type", ev.Type)
		return Response{}, nil
	}
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, ev Event) (Response, error) {
	chat, err := d.resolveChat(ctx, ev.Chat)
	if err != nil {
		return Response{}, err
	}
	msg := ev.Message

	if d.stale(ev.Timestamp) {
		d.logger.DebugContext(ctx, "Skipping stale message", "chat_id", chat.ID, "kind", msg.Kind, "timestamp", ev.Timestamp)
		if msg.Kind == MessageSticker && msg.StickerID != "" {
			if _, err := d.catalog.SaveSticker(ctx, chat.ID, msg.StickerID); err != nil {
				return Response{}, fmt.Errorf("save stale sticker: %w", err)
			}
		}
		return Response{}, nil
	}

	req := request{chat: chat, msg: msg, tr: i18n.For(chat.Language)}

	if chat.AwaitingSticker() {
		return d.binds.Complete(ctx, chat, msg, req.tr)
	}

	switch msg.Kind {
	case MessageMemberLeft:
		if d.isSelf(msg.Members) {
			if err := d.chats.DeleteChat(ctx, chat.ID); err != nil {
				return Response{}, fmt.Errorf("delete chat: %w", err)
			}
			d.logger.InfoContext(ctx, "Removed from chat, state deleted", "chat_id", chat.ID)
			return Response{}, nil
		}
		return d.policy.SendRandom(ctx, chat, msg.ID, true)
	case MessageMemberJoined:
		if d.isSelf(msg.Members) {
			d.logger.InfoContext(ctx, "Added to chat", "chat_id", chat.ID, "chat_name", chat.Name)
			return languagePrompt(chat.ID, req.tr), nil
		}
		return d.policy.SendRandom(ctx, chat, msg.ID, true)
	case MessageText:
		return d.dispatchText(ctx, req)
	case MessageSticker:
		resp, err := d.policy.SendRandom(ctx, chat, msg.ID, true)
		if err != nil {
			return Response{}, err
		}
		if msg.StickerID != "" {
			if _, err := d.catalog.SaveSticker(ctx, chat.ID, msg.StickerID); err != nil {
				return Response{}, fmt.Errorf("save sticker: %w", err)
			}
		}
		return resp, nil
	default:
		return d.policy.SendRandom(ctx, chat, msg.ID, true)
	}
}

func (d *Dispatcher) dispatchText(ctx context.Context, req request) (Response, error) {
	if token, args, ok := ParseCommand(req.msg.Text, d.cfg.BotUsername); ok {
		if handler, found := d.commands[token]; found {
			d.logger.DebugContext(ctx, "Running command", "chat_id", req.chat.ID, "command", token)
			return handler(ctx, req, args)
		}
	}

	bindings, err := d.catalog.ListWordBindings(ctx, req.chat.ID)
	if err != nil {
		return Response{}, fmt.Errorf("list word bindings: %w", err)
	}
	if m, ok := Match(Normalize(req.msg.Text), bindings); ok {
		d.logger.DebugContext(ctx, "Bound word matched", "chat_id", req.chat.ID, "word", m.Word)
		return d.policy.StickerReply(req.chat.ID, m.StickerID, req.msg.ID), nil
	}

	return d.policy.SendRandom(ctx, req.chat, req.msg.ID, true)
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, ev Event) (Response, error) {
	cb := ev.Callback
	ack := Response{CallbackQueryID: cb.ID}

	chat, err := d.resolveChat(ctx, ev.Chat)
	if err != nil {
		return Response{}, err
	}

	if !i18n.Supported(cb.Data) {
		d.logger.DebugContext(ctx, "Ignoring unknown language choice", "chat_id", chat.ID, "data", cb.Data)
		return ack, nil
	}

	chat.Language = cb.Data
	if err := d.chats.SaveChat(ctx, chat); err != nil {
		return Response{}, fmt.Errorf("save language: %w", err)
	}

	resp := textResponse(chat.ID, i18n.For(chat.Language).T(i18n.LanguageChanged))
	resp.Kind = ResponseEdit
	resp.EditMessageID = cb.MessageID
	resp.CallbackQueryID = cb.ID
	return resp, nil
}

// resolveChat is the only place chats are created.
func (d *Dispatcher) resolveChat(ctx context.Context, ref ChatRef) (*database.Chat, error) {
	chat, err := d.chats.GetChat(ctx, ref.ID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("get chat: %w", err)
	}

	chat, err = d.chats.CreateChat(ctx, &database.Chat{
		ID:          ref.ID,
		Name:        ref.Name,
		Language:    d.cfg.DefaultLanguage,
		Probability: DefaultProbability,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	d.logger.InfoContext(ctx, "Registered new chat", "chat_id", chat.ID, "chat_name", chat.Name)
	return chat, nil
}

func (d *Dispatcher) stale(ts time.Time) bool {
	if ts.IsZero() || d.cfg.StaleAfter <= 0 {
		return false
	}
	return d.now().Sub(ts) > d.cfg.StaleAfter
}

func (d *Dispatcher) isSelf(members []string) bool {
	if d.cfg.BotUsername == "" {
		return false
	}
	for _, m := range members {
		if strings.EqualFold(strings.TrimPrefix(m, "@"), d.cfg.BotUsername) {
			return true
		}
	}
	return false
}
