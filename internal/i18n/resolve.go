// Package i18n picks the language payload a concept is rendered in and holds
// the UI label strings for both content languages.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/p-n-ai/taleem/internal/concept"
)

const (
	// UntitledConcept is shown when no title exists in any usable language.
	UntitledConcept = "Untitled Concept"
	// NoDescription is shown when no introduction exists in any usable language.
	NoDescription = "No description available"
)

// Resolution is the payload a concept is rendered with.
type Resolution struct {
	Content  concept.LocalizedContent
	Language concept.Language
	Fallback bool
}

// Resolve returns the requested language payload, falling back to English.
// ok is false (content unavailable) when neither exists.
func Resolve(c concept.Concept, requested concept.Language) (Resolution, bool) {
	if lc, ok := c.LocalizedContent[requested]; ok {
		return Resolution{Content: lc, Language: requested}, true
	}
	if lc, ok := c.LocalizedContent[concept.English]; ok {
		return Resolution{
			Content:  lc,
			Language: concept.English,
			Fallback: requested != concept.English,
		}, true
	}
	return Resolution{}, false
}

// Title returns the concept title in the requested language, then English,
// then a placeholder.
func Title(c concept.Concept, requested concept.Language) string {
	return firstNonEmpty(c, requested, UntitledConcept, func(lc concept.LocalizedContent) string {
		return lc.Title
	})
}

// Introduction returns the introduction used as a short description.
func Introduction(c concept.Concept, requested concept.Language) string {
	return firstNonEmpty(c, requested, NoDescription, func(lc concept.LocalizedContent) string {
		return lc.Content.Introduction
	})
}

func firstNonEmpty(c concept.Concept, requested concept.Language, fallback string, field func(concept.LocalizedContent) string) string {
	for _, lang := range []concept.Language{requested, concept.English} {
		if lc, ok := c.LocalizedContent[lang]; ok {
			if s := strings.TrimSpace(field(lc)); s != "" {
				return s
			}
		}
	}
	return fallback
}

var supportedTags = []language.Tag{language.English, language.Urdu}

var matcher = language.NewMatcher(supportedTags)

// Parse maps a BCP 47 code onto a supported language ("ur-PK" is Urdu).
func Parse(code string) (concept.Language, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	lang := concept.Language(base.String())
	if !lang.Supported() {
		return "", false
	}
	return lang, true
}

// Negotiate picks the best supported language for an Accept-Language header.
// English is returned when nothing matches.
func Negotiate(acceptLanguage string) concept.Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return concept.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return concept.English
	}
	return concept.Languages[idx]
}
