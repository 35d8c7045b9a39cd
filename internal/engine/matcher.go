package engine

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/edgard/stickerbot/internal/database"
)

// Normalize lower-cases s with Unicode rules so bound words and message text
// compare case-insensitively in any script.
func Normalize(s string) string {
	// A Caser is stateful; build one per call.
	return cases.Lower(language.Und).String(s)
}

// MatchResult is a bound word found inside a message.
type MatchResult struct {
	Word      string
	StickerID string
	// Index is the byte offset of the word's first occurrence in the normalized text.
	Index int
}

// Match finds the best bound word occurring in text. The longest word (in characters) wins; among
// equally long words the earliest occurrence wins, then the earlier binding.
func Match(text string, bindings []database.WordBinding) (MatchResult, bool) {
	text = Normalize(text)

	var (
		best  MatchResult
		found bool
	)
	for _, b := range bindings {
		word := Normalize(b.Word)
		if word == "" {
			continue
		}
		idx := strings.Index(text, word)
		if idx == -1 {
			continue
		}

		candidate := MatchResult{Word: word, StickerID: b.StickerID, Index: idx}
		if !found || better(candidate, best) {
			best, found = candidate, true
		}
	}
	return best, found
}

func better(a, b MatchResult) bool {
	if la, lb := utf8.RuneCountInString(a.Word), utf8.RuneCountInString(b.Word); la != lb {
		return la > lb
	}
	return a.Index < b.Index
}
