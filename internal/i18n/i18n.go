// Package i18n holds the bilingual (Arabic/English) message catalog used by
// wizard validators and user-facing errors.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Supported locales.
const (
	Arabic  = "ar"
	English = "en"
)

// Translator resolves a message key into text for one locale.
type Translator interface {
	T(key string, args ...any) string
	Locale() string
}

var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// Negotiate picks the best supported locale for an Accept-Language header.
// fallback is returned when nothing matches.
func Negotiate(acceptLanguage, fallback string) string {
	if acceptLanguage == "" {
		return normalize(fallback)
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return normalize(fallback)
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return normalize(fallback)
	}
	if index == 1 {
		return English
	}
	return Arabic
}

type catalogTranslator struct {
	locale   string
	messages map[string]string
}

// New returns a translator for locale; unknown locales fall back to Arabic.
func New(locale string) Translator {
	locale = normalize(locale)
	return catalogTranslator{locale: locale, messages: catalogs[locale]}
}

func (c catalogTranslator) Locale() string { return c.locale }

// T formats the message for key. Missing keys return the key itself so a
// gap in the catalog never produces an empty validation error.
func (c catalogTranslator) T(key string, args ...any) string {
	msg, ok := c.messages[key]
	if !ok {
		msg, ok = catalogs[English][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func normalize(locale string) string {
	if locale == English {
		return English
	}
	return Arabic
}
