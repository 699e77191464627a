// Package i18n holds the three supported interface languages and the small set of
// fixed strings the application prints outside of the content catalog.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported interface language.
type Lang string

const (
	Farsi     Lang = "fa"
	English   Lang = "en"
	Ukrainian Lang = "uk"
)

// Default is used whenever a requested language cannot be matched.
const Default = English

// All lists the supported languages in menu order.
var All = []Lang{Farsi, English, Ukrainian}

var supportedTags = []language.Tag{
	language.English, // first entry is the matcher fallback
	language.Persian,
	language.Ukrainian,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Parse resolves a user-supplied language hint ("fa", "uk-UA", "en_GB", "fa-IR,en;q=0.5")
// to one of the supported languages.
func Parse(s string) Lang {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return Default
	}
	if l := Lang(strings.ToLower(s)); l.Valid() {
		return l
	}
	_, idx := language.MatchStrings(tagMatcher, s)
	switch supportedTags[idx] {
	case language.Persian:
		return Farsi
	case language.Ukrainian:
		return Ukrainian
	default:
		return English
	}
}

// Valid reports whether l is one of the supported languages.
func (l Lang) Valid() bool {
	switch l {
	case Farsi, English, Ukrainian:
		return true
	}
	return false
}

// Tag returns the BCP 47 tag for l.
func (l Lang) Tag() language.Tag {
	switch l {
	case Farsi:
		return language.Persian
	case Ukrainian:
		return language.Ukrainian
	default:
		return language.English
	}
}

// RTL reports whether l is written right to left.
func (l Lang) RTL() bool { return l == Farsi }

// Name is the English name of the language as used in prompts.
func (l Lang) Name() string {
	switch l {
	case Farsi:
		return "Farsi (RTL)"
	case Ukrainian:
		return "Ukrainian"
	default:
		return "English"
	}
}

// Native is the language's own name, shown by the language switcher.
func (l Lang) Native() string {
	switch l {
	case Farsi:
		return "فارسی"
	case Ukrainian:
		return "Українська"
	default:
		return "English"
	}
}

// Audience names the people the assistant is helping in l.
func (l Lang) Audience() string {
	switch l {
	case Farsi:
		return "Iranians"
	case Ukrainian:
		return "Ukrainians"
	default:
		return "users"
	}
}

// Next cycles through All.
func (l Lang) Next() Lang {
	for i, c := range All {
		if c == l {
			return All[(i+1)%len(All)]
		}
	}
	return Default
}

// Text is a string localized into some of the supported languages.
type Text map[Lang]string

// Get returns the text for l, falling back to English and then to any translation.
func (t Text) Get(l Lang) string {
	if s, ok := t[l]; ok && s != "" {
		return s
	}
	if s, ok := t[English]; ok && s != "" {
		return s
	}
	for _, c := range All {
		if s := t[c]; s != "" {
			return s
		}
	}
	return ""
}

// Empty reports whether no translation is set.
func (t Text) Empty() bool { return t.Get(English) == "" }
