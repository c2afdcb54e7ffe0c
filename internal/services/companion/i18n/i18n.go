// Package i18n resolves the request language and translates companion text.
package i18n

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/fightfantasy/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "ff_lang"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// Translator turns message keys into display text.
type Translator interface {
	T(key string, args ...any) string
}

// Localizer owns the translated catalog for every supported language.
type Localizer struct {
	cat     xcatalog.Catalog
	tags    []language.Tag
	matcher language.Matcher
}

// NewLocalizer builds a Localizer from a loaded bundle.
func NewLocalizer(bundle *catalog.Bundle) (*Localizer, error) {
	if bundle == nil {
		return nil, fmt.Errorf("catalog bundle is required")
	}
	cat, err := bundle.Catalog()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	tags := bundle.Tags()
	return &Localizer{cat: cat, tags: tags, matcher: language.NewMatcher(tags)}, nil
}

// Default returns the fallback language.
func (l *Localizer) Default() language.Tag {
	return l.tags[0]
}

// Supported returns the supported tags, default first.
func (l *Localizer) Supported() []language.Tag {
	return append([]language.Tag(nil), l.tags...)
}

// ParseTag maps value onto a supported tag.
func (l *Localizer) ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	return l.match(tag)
}

func (l *Localizer) match(tags ...language.Tag) (language.Tag, bool) {
	_, index, confidence := l.matcher.Match(tags...)
	if confidence == language.No {
		return l.Default(), false
	}
	return l.tags[index], true
}

// ResolveTag picks the request language: lang query, then cookie, then
// Accept-Language, then the default. The bool reports whether the query
// value should be persisted as a cookie.
func (l *Localizer) ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return l.Default(), false
	}
	if tag, ok := l.ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := l.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if tag, ok := l.match(tags...); ok {
				return tag, false
			}
		}
	}
	return l.Default(), false
}

// Printer returns a Translator for tag.
func (l *Localizer) Printer(tag language.Tag) *Printer {
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(l.cat))}
}

// Options lists the language switcher entries for the current request.
func (l *Localizer) Options(active language.Tag, path, rawQuery string) []LanguageOption {
	printer := l.Printer(active)
	options := make([]LanguageOption, 0, len(l.tags))
	for _, tag := range l.tags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  printer.T(LanguageKey(tag)),
			URL:    LanguageURL(path, rawQuery, tag.String()),
			Active: tag == active,
		})
	}
	return options
}

// Printer translates keys for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// T returns the translation of key. Unknown keys come back unchanged.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Tag returns the printer's language.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageURL returns path with the language param set to tag.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LanguageKey maps a tag to its label key in the core namespace.
func LanguageKey(tag language.Tag) string {
	return "core.lang." + strings.ToLower(strings.ReplaceAll(tag.String(), "-", "_"))
}
