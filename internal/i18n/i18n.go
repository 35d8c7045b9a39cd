// Package i18n holds the bot's localized message templates. The catalog is built once
// at package initialization and is read-only afterwards.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Language codes as stored on chats and carried in language-choice callbacks.
const (
	English = "english"
	Russian = "russian"

	Default = English
)

// Message keys.
const (
	Stats            = "stats"
	SetChanceSuccess = "set_chance_success"
	SetChanceJunk    = "set_chance_junk"
	SetChanceLimit   = "set_chance_limit"
	BindInit         = "bind_init"
	BindEmpty        = "bind_empty"
	BindSuccess      = "bind_success"
	NotSticker       = "not_sticker"
	UnbindSuccess    = "unbind_success"
	UnbindJunk       = "unbind_junk"
	UnbindEmpty      = "unbind_empty"
	ChooseLanguage   = "choose_language"
	LanguageChanged  = "language_changed"
	Help             = "help"
)

// Choice is one entry of the language selection keyboard.
type Choice struct {
	Label string
	Code  string
}

var (
	tags = map[string]language.Tag{
		English: language.English,
		Russian: language.Russian,
	}

	// Choices lists the selectable languages in keyboard order.
	Choices = []Choice{
		{Label: "English", Code: English},
		{Label: "Русский", Code: Russian},
	}

	cat = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for code, table := range templates {
		tag := tags[code]
		for key, msg := range table {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("i18n: invalid template " + code + "/" + key + ": " + err.Error())
			}
		}
	}
	return b
}

// Supported reports whether code names a language with a template table.
func Supported(code string) bool {
	_, ok := tags[code]
	return ok
}

// Printer formats messages for a single language.
type Printer struct {
	p *message.Printer
}

// For returns the printer for code, falling back to the default language for unknown codes.
func For(code string) Printer {
	tag, ok := tags[code]
	if !ok {
		tag = tags[Default]
	}
	return Printer{p: message.NewPrinter(tag, message.Catalog(cat))}
}

// T renders the template stored under key with the positional args.
func (p Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
