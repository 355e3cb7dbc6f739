package voxlai

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// SupportedLanguages lists the language codes accepted by the endpoints,
// in the order they are offered to users.
var SupportedLanguages = []string{
	// Base languages
	"id", "en", "ja", "zh", "ar", "fr", "es", "de", "ru", "ko", "it", "pt",
	"nl", "sv", "no", "da", "fi", "cs", "tr", "he", "el", "hi", "th", "vi",

	// Regional variants (voice selection)
	"id-ID", "en-US", "ja-JP", "zh-CN", "ar-XA", "fr-FR", "es-ES", "de-DE",
	"ru-RU", "ko-KR", "it-IT", "pt-BR", "nl-NL", "sv-SE", "no-NO", "da-DK",
	"fi-FI", "pl-PL", "cs-CZ", "tr-TR", "he-IL", "el-GR", "hi-IN", "th-TH",
	"vi-VN",
}

var supportedSet = func() map[string]bool {
	m := make(map[string]bool, len(SupportedLanguages))
	for _, code := range SupportedLanguages {
		m[code] = true
	}
	return m
}()

// localeClarifications holds extra prompt hints for ambiguous locales.
var localeClarifications = map[string]string{
	"es-ES": "Use Castilian Spanish as spoken in Spain (vosotros, Spain vocabulary).",
	"pt-BR": "Use Brazilian Portuguese, not European Portuguese.",
	"zh":    "Use Simplified Chinese characters.",
	"zh-CN": "Use Simplified Chinese characters as used in mainland China.",
	"no":    "Use Norwegian Bokmål, not Nynorsk.",
	"no-NO": "Use Norwegian Bokmål, not Nynorsk.",
	"ar-XA": "Use Modern Standard Arabic.",
}

// IsSupported reports whether code is one of SupportedLanguages.
func IsSupported(code string) bool {
	return supportedSet[code]
}

// ParseLanguage validates a supported language code and returns its BCP 47 tag.
// role ("source", "target" or "") is carried into the returned LanguageError.
func ParseLanguage(code, role string) (language.Tag, error) {
	if !IsSupported(code) {
		return language.Und, &LanguageError{Code: code, Role: role}
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, &LanguageError{Code: code, Role: role, Cause: err}
	}
	return tag, nil
}

// GetLanguageName returns the English name for a language code.
// Falls back to the code itself if it cannot be parsed.
func GetLanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// GetLocaleClarification returns an optional prompt hint for a locale.
func GetLocaleClarification(code string) string {
	return localeClarifications[code]
}

// BaseLanguage extracts the lower-cased base language (e.g., "en" from "en-US" or "en_US").
func BaseLanguage(code string) string {
	code = NormalizeLocale(code)
	if tag, err := language.Parse(code); err == nil {
		base, _ := tag.Base()
		return base.String()
	}
	return strings.ToLower(strings.Split(code, "-")[0])
}

// SameLanguage reports whether two codes share a base language,
// in which case translation can be bypassed.
func SameLanguage(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return BaseLanguage(a) == BaseLanguage(b)
}

// NormalizeLocale converts a language code to BCP 47 form (e.g., "es_ES" → "es-ES").
func NormalizeLocale(code string) string {
	return strings.ReplaceAll(code, "_", "-")
}
