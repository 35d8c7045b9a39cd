package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/edgard/stickerbot/internal/database"
	"github.com/edgard/stickerbot/internal/i18n"
)

// Command tokens.
const (
	CmdRandom   = "/pshh"
	CmdChance   = "/chance"
	CmdBind     = "/bind"
	CmdUnbind   = "/unbind"
	CmdStats    = "/stats"
	CmdHelp     = "/help"
	CmdLanguage = "/language"
)

// request carries the per-event values every command needs.
type request struct {
	chat *database.Chat
	msg  *Message
	tr   i18n.Printer
}

type commandHandler func(ctx context.Context, req request, args []string) (Response, error)

func (d *Dispatcher) commandTable() map[string]commandHandler {
	return map[string]commandHandler{
		CmdRandom:   d.cmdRandom,
		CmdChance:   d.cmdChance,
		CmdBind:     d.cmdBind,
		CmdUnbind:   d.cmdUnbind,
		CmdStats:    d.cmdStats,
		CmdHelp:     d.cmdHelp,
		CmdLanguage: d.cmdLanguage,
	}
}

// ParseCommand splits text into a command token and its arguments. ok is false when
// the text is not a command or is addressed to a different bot.
func ParseCommand(text, botUsername string) (token string, args []string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}

	token = fields[0]
	if at := strings.IndexByte(token, '@'); at != -1 {
		target := token[at+1:]
		if botUsername != "" && !strings.EqualFold(target, botUsername) {
			return "", nil, false
		}
		token = token[:at]
	}
	return token, fields[1:], true
}

func (d *Dispatcher) cmdRandom(ctx context.Context, req request, _ []string) (Response, error) {
	return d.policy.SendRandom(ctx, req.chat, req.msg.ID, false)
}

func (d *Dispatcher) cmdChance(ctx context.Context, req request, args []string) (Response, error) {
	low, high := d.cfg.ChanceMin, d.cfg.ChanceMax

	if len(args) == 0 {
		return textResponse(req.chat.ID, req.tr.T(i18n.SetChanceJunk, low, high)), nil
	}
	raw := args[0]
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return textResponse(req.chat.ID, req.tr.T(i18n.SetChanceJunk, low, high)), nil
	}
	// NaN fails both comparisons and lands here.
	if !(value >= float64(low) && value <= float64(high)) {
		return textResponse(req.chat.ID, req.tr.T(i18n.SetChanceLimit, low, high)), nil
	}

	req.chat.Probability = value / 100
	if err := d.chats.SaveChat(ctx, req.chat); err != nil {
		return Response{}, fmt.Errorf("save probability: %w", err)
	}
	return textResponse(req.chat.ID, req.tr.T(i18n.SetChanceSuccess, raw)), nil
}

func (d *Dispatcher) cmdBind(ctx context.Context, req request, args []string) (Response, error) {
	return d.binds.Begin(ctx, req.chat, args, req.tr)
}

func (d *Dispatcher) cmdUnbind(ctx context.Context, req request, args []string) (Response, error) {
	if len(args) == 0 {
		return textResponse(req.chat.ID, req.tr.T(i18n.UnbindEmpty)), nil
	}

	word := strings.Join(args, " ")
	removed, err := d.catalog.UnbindWord(ctx, req.chat.ID, word)
	if err != nil {
		return Response{}, fmt.Errorf("unbind word: %w", err)
	}
	if removed == 0 {
		return textResponse(req.chat.ID, req.tr.T(i18n.UnbindJunk, word)), nil
	}
	return textResponse(req.chat.ID, req.tr.T(i18n.UnbindSuccess)), nil
}

func (d *Dispatcher) cmdStats(ctx context.Context, req request, _ []string) (Response, error) {
	count, err := d.catalog.CountChatStickers(ctx, req.chat.ID)
	if err != nil {
		return Response{}, fmt.Errorf("count chat stickers: %w", err)
	}
	bindings, err := d.catalog.ListWordBindings(ctx, req.chat.ID)
	if err != nil {
		return Response{}, fmt.Errorf("list word bindings: %w", err)
	}

	words := make([]string, 0, len(bindings))
	for _, b := range bindings {
		words = append(words, b.Word)
	}
	sort.Strings(words)

	return textResponse(req.chat.ID, req.tr.T(i18n.Stats, strconv.Itoa(count), strings.Join(words, ", "))), nil
}

func (d *Dispatcher) cmdHelp(_ context.Context, req request, _ []string) (Response, error) {
	resp := textResponse(req.chat.ID, req.tr.T(i18n.Help))
	resp.ParseMode = ParseModeHTML
	resp.DisableLinkPreview = true
	return resp, nil
}

func (d *Dispatcher) cmdLanguage(_ context.Context, req request, _ []string) (Response, error) {
	return languagePrompt(req.chat.ID, req.tr), nil
}

func languagePrompt(chatID int64, tr i18n.Printer) Response {
	row := make([]Button, 0, len(i18n.Choices))
	for _, c := range i18n.Choices {
		row = append(row, Button{Label: c.Label, Data: c.Code})
	}

	resp := textResponse(chatID, tr.T(i18n.ChooseLanguage))
	resp.Keyboard = [][]Button{row}
	return resp
}
