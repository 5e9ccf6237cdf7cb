package domain

import (
	"context"
	"strings"

	"buildcare_site/platform/logger"

	"golang.org/x/text/language"
)

// Language is one of the two supported site languages.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"

	// Default is served when nothing else selects a language.
	Default = English
)

// Dir is the reading direction of a language.
type Dir string

const (
	LTR Dir = "ltr"
	RTL Dir = "rtl"
)

// Supported lists the languages in matcher preference order.
var Supported = []Language{English, Arabic}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// Parse accepts a bare code ("ar") or any BCP 47 tag whose base language is
// supported ("ar-AE", "en-GB").
func Parse(value string) (Language, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case string(English):
		return English, true
	case string(Arabic):
		return Arabic, true
	}
	return "", false
}

// Normalize returns lang when supported and Default otherwise.
func Normalize(lang Language) Language {
	if parsed, ok := Parse(string(lang)); ok {
		return parsed
	}
	return Default
}

// Match picks the best supported language for an Accept-Language header.
func Match(acceptLanguage string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return Supported[idx]
}

// Direction returns the reading direction for lang.
func Direction(lang Language) Dir {
	if Normalize(lang) == Arabic {
		return RTL
	}
	return LTR
}

// Other returns the language a toggle switches to.
func (l Language) Other() Language {
	if Normalize(l) == Arabic {
		return English
	}
	return Arabic
}

// WithLanguage stores lang on ctx under the key the logger reads.
func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, logger.LanguageKey, string(lang))
}

// FromContext returns the request language, or Default when none was set.
func FromContext(ctx context.Context) Language {
	if ctx == nil {
		return Default
	}
	if value, ok := ctx.Value(logger.LanguageKey).(string); ok {
		if lang, ok := Parse(value); ok {
			return lang
		}
	}
	return Default
}
