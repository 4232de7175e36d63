package services

import "strings"

// Built-in phrase table standing in for a hosted translation API. Keyed by
// exact message text, then by target language.
var phraseTable = map[string]map[string]string{
	"Hello":      {"ko": "안녕하세요", "ja": "こんにちは", "en": "Hello"},
	"안녕하세요": {"ko": "안녕하세요", "ja": "こんにちは", "en": "Hello"},
	"こんにちは": {"ko": "안녕하세요", "ja": "こんにちは", "en": "Hello"},
}

// TranslateMessage translates text into targetLang ("ko", "ja" or "en").
// Phrases missing from the table come back as "[LANG] original text", a
// visible fallback instead of a failure, so callers never special-case a
// missing translation.
func TranslateMessage(text, targetLang string) string {
	lang := strings.ToLower(targetLang)
	if byLang, ok := phraseTable[text]; ok {
		if translated, ok := byLang[lang]; ok {
			return translated
		}
	}
	return "[" + strings.ToUpper(targetLang) + "] " + text
}
