// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"strings"
	"sync"
	"text/template"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// Vars holds the named placeholder values of a message.
type Vars map[string]any

// UserError is an error whose message has already been translated for the
// request that produced it, so it can be shown on an error page as is.
type UserError struct {
	text string
}

// NewUserError translates msgid for ctx and wraps it as an error.
func NewUserError(ctx context.Context, msgid string, kv ...any) *UserError {
	return &UserError{text: Tr(ctx, msgid, kv...)}
}

func (e *UserError) Error() string {
	return e.text
}

// Tr translates msgid, the English UI text, into the locale carried by ctx.
// Optional key, value pairs fill {{.Name}} placeholders.
func Tr(ctx context.Context, msgid string, kv ...any) string {
	return message{id: msgid}.translate(ctx, kv)
}

// TrC is Tr with a gettext message context (msgctxt), for labels whose
// English text is shared by entries that translate differently.
func TrC(ctx context.Context, msgctxt, msgid string, kv ...any) string {
	return message{context: msgctxt, id: msgid}.translate(ctx, kv)
}

// TrN picks the singular or plural form of a message for n.
func TrN(ctx context.Context, singular, plural string, n int, kv ...any) string {
	return message{id: singular, plural: plural, n: n, counted: true}.translate(ctx, kv)
}

// TrNC is TrN with a message context.
func TrNC(ctx context.Context, msgctxt, singular, plural string, n int, kv ...any) string {
	return message{context: msgctxt, id: singular, plural: plural, n: n, counted: true}.translate(ctx, kv)
}

// message is one lookup in a gettext catalogue.
type message struct {
	context string
	id      string
	plural  string
	n       int
	counted bool
}

// source is the untranslated text, following English plural rules.
func (m message) source() string {
	if m.counted && m.n != 1 {
		return m.plural
	}

	return m.id
}

// lookup returns the catalogue text for m, if loc has one.
func (m message) lookup(loc *gotext.Locale) (string, bool) {
	if loc == nil {
		return "", false
	}

	switch {
	case m.counted && m.context != "":
		if loc.IsTranslatedNDC(poDomain, m.id, m.n, m.context) {
			return loc.GetNDC(poDomain, m.id, m.plural, m.n, m.context), true
		}
	case m.counted:
		if loc.IsTranslatedND(poDomain, m.id, m.n) {
			return loc.GetND(poDomain, m.id, m.plural, m.n), true
		}
	case m.context != "":
		if loc.IsTranslatedDC(poDomain, m.id, m.context) {
			return loc.GetDC(poDomain, m.id, m.context), true
		}
	default:
		if loc.IsTranslatedD(poDomain, m.id) {
			return loc.GetD(poDomain, m.id), true
		}
	}

	return "", false
}

// key is the gettext "msgctxt<EOT>msgid" form used in logs.
func (m message) key() string {
	if m.context == "" {
		return m.id
	}

	return m.context + gotext.EotSeparator + m.id
}

func (m message) translate(ctx context.Context, kv []any) string {
	loc, tag := resolveLocale(TagFrom(ctx))

	text, ok := m.lookup(loc)
	if !ok {
		text = m.source()

		if strictMissingKeys() {
			logMissingOnce(strippedTagString(tag), m.key())

			text = markMissing(text)
		}
	}

	return fill(tag, text, pairs(kv))
}

func markMissing(s string) string {
	return "⟦" + s + "⟧"
}

// compiled holds parsed placeholder templates keyed by their source text.
var compiled sync.Map

// fill executes s as a text/template over vars. Text without placeholders is
// returned untouched; a template that fails keeps its raw text.
func fill(tag language.Tag, s string, vars Vars) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	tmpl, err := parsePlaceholders(s)
	if err == nil {
		var sb strings.Builder

		if err = tmpl.Execute(&sb, map[string]any(vars)); err == nil {
			return sb.String()
		}
	}

	if strictMissingKeys() {
		return markMissing(s)
	}

	Logger.Warn().Err(err).Str("locale", tag.String()).Str("text", s).Msg("Failed to fill translation placeholders")

	return s
}

func parsePlaceholders(s string) (*template.Template, error) {
	if t, ok := compiled.Load(s); ok {
		return t.(*template.Template), nil
	}

	t, err := template.New("msg").Option("missingkey=error").Parse(s)
	if err != nil {
		return nil, err
	}

	compiled.Store(s, t)

	return t, nil
}

// resolveLocale matches t against the loaded catalogues and returns the
// catalogue with its tag, or nil and baseTag before Setup.
func resolveLocale(t language.Tag) (*gotext.Locale, language.Tag) {
	if matcher == nil {
		return nil, baseTag
	}

	// Use the index: the returned tag may carry -u-rg extensions.
	_, idx, _ := matcher.Match(t)
	matched := supportedTags[idx]

	return localesByTag[matched.String()], matched
}

// pairs builds Vars from alternating key, value arguments. It panics on an
// odd count or a non-string key since both are programming errors.
func pairs(kv []any) Vars {
	if len(kv)%2 != 0 {
		panic("i18n: odd number of arguments, want key, value pairs")
	}

	vars := make(Vars, len(kv)/2)

	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n: placeholder key must be a string")
		}

		vars[k] = kv[i+1]
	}

	return vars
}
