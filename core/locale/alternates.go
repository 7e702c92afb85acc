// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// XDefault is the hreflang value of the fallback alternate.
const XDefault = "x-default"

// Alternate is one hreflang link of a page.
type Alternate struct {
	HrefLang string
	Href     string
}

// AlternateLinks builds the hreflang alternates of pathname for every
// supported locale, followed by an x-default entry pointing at Default.
//
// siteURL must not end in "/".
func AlternateLinks(siteURL, pathname string) []Alternate {
	siteURL = strings.TrimSuffix(siteURL, "/")
	links := make([]Alternate, 0, len(all)+1)

	for _, l := range all {
		links = append(links, Alternate{
			HrefLang: l.HrefLang(),
			Href:     siteURL + SwitchPath(pathname, l),
		})
	}

	links = append(links, Alternate{
		HrefLang: XDefault,
		Href:     siteURL + SwitchPath(pathname, Default),
	})

	return links
}

// matcher orders Default first so it wins ties and empty input.
var matcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(all))
	for _, l := range all {
		tags = append(tags, language.Make(string(l)))
	}

	return language.NewMatcher(tags)
}()

// Detect picks the best supported locale for an Accept-Language header value.
//
// Only the base language is considered, so "ko-KR" and "ko" both detect KO.
func Detect(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}

	_, index, confidence := matcher.Match(parseAccept(acceptLanguage)...)
	if confidence == language.No {
		return Default
	}

	return all[index]
}

func parseAccept(acceptLanguage string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return nil
	}

	return tags
}

// Tag returns the language tag of l, used to select gettext catalogues.
func (l Locale) Tag() language.Tag {
	if !l.IsSupported() {
		return language.Make(string(Default))
	}

	return language.Make(string(l))
}
