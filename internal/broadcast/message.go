package broadcast

import "unicode/utf8"

// Language identifies the spoken language of a broadcast payload. Morse is
// modeled as a language of its own because it selects a different synthesis
// path downstream.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageItalian Language = "it"
	LanguageGerman  Language = "de"
	LanguageRussian Language = "ru"
	LanguageChinese Language = "zh"
	LanguageMorse   Language = "morse"
)

// SupportedLanguages lists every language the synthesizer can handle.
func SupportedLanguages() []Language {
	return []Language{
		LanguageEnglish,
		LanguageItalian,
		LanguageGerman,
		LanguageRussian,
		LanguageChinese,
		LanguageMorse,
	}
}

// Supported reports whether the language belongs to the allow-list.
func (l Language) Supported() bool {
	switch l {
	case LanguageEnglish, LanguageItalian, LanguageGerman, LanguageRussian, LanguageChinese, LanguageMorse:
		return true
	}
	return false
}

// Message is one generated broadcast: the full text block and the language
// tag the synthesizer should use. Immutable once produced.
type Message struct {
	Text     string
	Language Language
}

// CharCount returns the number of characters in the text. Post-length
// thresholds count characters, not bytes, because payloads carry Cyrillic
// and CJK script.
func (m Message) CharCount() int {
	return utf8.RuneCountInString(m.Text)
}
