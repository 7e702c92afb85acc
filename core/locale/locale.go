// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package locale resolves the active documentation locale.

Every page fragment (navbar, footer, head, home page) resolves its locale
through this package so that the rules stay identical across the site.
Nothing here reads ambient state: callers pass the request path and the
stored preference explicitly.
*/
package locale

import (
	"strings"
)

// Locale is a documentation language code.
type Locale string

// Supported locales, in navbar order.
const (
	EN Locale = "en"
	KO Locale = "ko"
	JA Locale = "ja"
	ZH Locale = "zh"
	FR Locale = "fr"
	DE Locale = "de"
	RU Locale = "ru"
)

// Default is the locale used when nothing else applies.
const Default = EN

var all = []Locale{EN, KO, JA, ZH, FR, DE, RU}

// info holds the static per-locale data.
type info struct {
	hrefLang string
	label    string
}

var infos = map[Locale]info{
	EN: {hrefLang: "en-US", label: "English"},
	KO: {hrefLang: "ko-KR", label: "한국어"},
	JA: {hrefLang: "ja-JP", label: "日本語"},
	ZH: {hrefLang: "zh-CN", label: "中文"},
	FR: {hrefLang: "fr-FR", label: "Français"},
	DE: {hrefLang: "de-DE", label: "Deutsch"},
	RU: {hrefLang: "ru-RU", label: "Русский"},
}

// All returns the supported locales in declaration order.
//
// The returned slice is a copy.
func All() []Locale {
	out := make([]Locale, len(all))
	copy(out, all)

	return out
}

// IsSupported reports whether l is one of the supported locales.
func (l Locale) IsSupported() bool {
	_, ok := infos[l]

	return ok
}

func (l Locale) String() string {
	return string(l)
}

// HrefLang returns the BCP 47 tag used in hreflang alternates.
func (l Locale) HrefLang() string {
	return infos[l].hrefLang
}

// Label returns the native name of the language.
func (l Locale) Label() string {
	return infos[l].label
}

// ContentDir returns the content directory name holding documents for l.
func (l Locale) ContentDir() string {
	return "docs-" + string(l)
}

// Parse recognizes a locale code, ignoring case and surrounding whitespace.
func Parse(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsSupported() {
		return "", false
	}

	return l, true
}

// firstSegment returns the first non-empty path segment.
func firstSegment(pathname string) string {
	for _, seg := range strings.Split(pathname, "/") {
		if seg != "" {
			return seg
		}
	}

	return ""
}

// FromPath returns the locale named by the first path segment.
func FromPath(pathname string) (Locale, bool) {
	seg := firstSegment(pathname)
	if seg == "" {
		return "", false
	}

	l := Locale(seg)
	if !l.IsSupported() {
		return "", false
	}

	return l, true
}

// HasExplicit reports whether pathname is "/L" or starts with "/L/" for a supported L.
func HasExplicit(pathname string) bool {
	for _, l := range all {
		prefix := "/" + string(l)
		if pathname == prefix || strings.HasPrefix(pathname, prefix+"/") {
			return true
		}
	}

	return false
}

// Resolve returns the active locale for a request.
//
// A supported first path segment always wins. A path whose first segment is
// not a locale resolves to Default, whatever the stored preference says.
// Only a path without any segment (the site root) consults stored.
func Resolve(pathname, stored string) Locale {
	seg := firstSegment(pathname)
	if seg != "" {
		if l := Locale(seg); l.IsSupported() {
			return l
		}

		return Default
	}

	if l := Locale(stored); l.IsSupported() {
		return l
	}

	return Default
}

// StripPrefix removes a leading locale segment from pathname.
//
// The result always starts with "/".
func StripPrefix(pathname string) string {
	if !HasExplicit(pathname) {
		if pathname == "" {
			return "/"
		}

		return pathname
	}

	rest := pathname[1+len(firstSegment(pathname)):]
	if rest == "" {
		return "/"
	}

	return rest
}

// SwitchPath returns pathname rewritten for target, replacing any leading
// locale segment.
func SwitchPath(pathname string, target Locale) string {
	rest := StripPrefix(pathname)
	if rest == "/" {
		return "/" + string(target)
	}

	return "/" + string(target) + rest
}
