package i18n

var templates = map[string]map[string]string{
	English: {
		Stats:            "Stickers known in this chat: %s\nBound words: %s",
		SetChanceSuccess: "Done! I will now answer with a chance of %s%%.",
		SetChanceJunk:    "Please send a number from %d to %d, for example /chance 10",
		SetChanceLimit:   "The chance must be between %d and %d.",
		BindInit:         "Now send me the sticker for this word.",
		BindEmpty:        "Nothing to bind. Use /bind followed by a word or phrase.",
		BindSuccess:      "Bound! I will answer with this sticker from now on.",
		NotSticker:       "That was not a sticker. Start over with /bind and send a sticker next time.",
		UnbindSuccess:    "The word is no longer bound.",
		UnbindJunk:       "Nothing is bound to \"%s\".",
		UnbindEmpty:      "Nothing to unbind. Use /unbind followed by a word or phrase.",
		ChooseLanguage:   "Choose a language:",
		LanguageChanged:  "Language set to English.",
		Help: "I reply to messages with stickers.\n\n" +
			"<b>/pshh</b> - send a random sticker\n" +
			"<b>/chance</b> <i>N</i> - reply to N%% of messages (0-50)\n" +
			"<b>/bind</b> <i>word</i> - bind a word to the next sticker you send\n" +
			"<b>/unbind</b> <i>word</i> - remove a bound word\n" +
			"<b>/stats</b> - known stickers and bound words\n" +
			"<b>/language</b> - change the language\n\n" +
			"Source: https://github.com/edgard/stickerbot",
	},
	Russian: {
		Stats:            "Стикеров в этом чате: %s\nПривязанные слова: %s",
		SetChanceSuccess: "Готово! Теперь я отвечаю с вероятностью %s%%.",
		SetChanceJunk:    "Отправьте число от %d до %d, например /chance 10",
		SetChanceLimit:   "Вероятность должна быть от %d до %d.",
		BindInit:         "Теперь отправьте стикер для этого слова.",
		BindEmpty:        "Нечего привязывать. Используйте /bind и слово или фразу.",
		BindSuccess:      "Привязано! Теперь я буду отвечать этим стикером.",
		NotSticker:       "Это не стикер. Начните заново с /bind и отправьте стикер.",
		UnbindSuccess:    "Слово больше не привязано.",
		UnbindJunk:       "К слову \"%s\" ничего не привязано.",
		UnbindEmpty:      "Нечего отвязывать. Используйте /unbind и слово или фразу.",
		ChooseLanguage:   "Выберите язык:",
		LanguageChanged:  "Язык изменён на русский.",
		Help: "Я отвечаю на сообщения стикерами.\n\n" +
			"<b>/pshh</b> - случайный стикер\n" +
			"<b>/chance</b> <i>N</i> - отвечать на N%% сообщений (0-50)\n" +
			"<b>/bind</b> <i>слово</i> - привязать слово к следующему стикеру\n" +
			"<b>/unbind</b> <i>слово</i> - отвязать слово\n" +
			"<b>/stats</b> - стикеры и привязанные слова\n" +
			"<b>/language</b> - сменить язык\n\n" +
			"Исходный код: https://github.com/edgard/stickerbot",
	},
}
