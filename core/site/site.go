// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package site describes the page chrome shared by every documentation page:
the navbar, the footer, the home page copy and the social card image.

Labels are gettext msgids. Views translate them with the vars returned by
Vars, so a label may reference the brand name as {{.Brand}}.
*/
package site

import (
	"strings"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/particle"
)

// External destinations shared by both brands.
const (
	VSCodeMarketplaceURL = "https://marketplace.visualstudio.com/items?itemName=caretive.caret"
	OpenVSXURL           = "https://open-vsx.org/extension/Caretive/caret"
	GitHubURL            = "https://github.com/aicoding-caret/caret"
	YouTubeURL           = "https://www.youtube.com/@aicoding-caret"
	DiscordURL           = "https://discord.gg/K3mU3EEvWm"
	CompanyURL           = "https://caretive.ai"
)

// DocsHomeSlug is the page every locale's docs entry point links to.
const DocsHomeSlug = "getting-started/what-is-caret"

// Link is one navigation entry.
type Link struct {
	// Label is a msgid, or the final text when Literal is set.
	Label   string
	Context string // msgctxt disambiguating Label
	Literal bool

	Href     string
	External bool
	Active   bool

	// Locale is the target of a language switch link.
	Locale locale.Locale
}

func internal(label, href string) Link {
	return Link{Label: label, Href: href}
}

func external(label, href string) Link {
	return Link{Label: label, Href: href, External: true}
}

// DocsHome returns the path of the docs entry page for l.
func DocsHome(l locale.Locale) string {
	return "/" + string(l) + "/" + DocsHomeSlug
}

// marketingLocales are the locales the service site publishes beyond its home page.
var marketingLocales = map[locale.Locale]bool{
	locale.EN: true,
	locale.KO: true,
	locale.JA: true,
	locale.ZH: true,
}

// marketingLocale maps l to a locale the service site has pages in.
func marketingLocale(l locale.Locale) locale.Locale {
	if marketingLocales[l] {
		return l
	}

	return locale.Default
}

// BrochureURL returns the enterprise brochure on the service site of b.
func BrochureURL(b brand.Brand, l locale.Locale) string {
	return b.ServiceURL(marketingLocale(l)) + "/brochure"
}

// Vars returns the template variables available to every chrome label.
func Vars(b brand.Brand, l locale.Locale) []any {
	return []any{
		"Brand", b.DisplayName(l),
		"BrandName", b.Name,
		"BrandTopic", b.Mention(l, particle.Topic),
	}
}

var socialCards = map[locale.Locale]string{
	locale.KO: "/og/ogtag-ko.webp",
	locale.JA: "/og/ogtag-ja.webp",
	locale.ZH: "/og/ogtag-zh.webp",
}

const fallbackSocialCard = "/og/ogtag-en.webp"

// OGImage returns the absolute URL of the social card image for l.
// Locales without their own card use the English one.
func OGImage(siteURL string, l locale.Locale) string {
	card, ok := socialCards[l]
	if !ok {
		card = fallbackSocialCard
	}

	return strings.TrimSuffix(siteURL, "/") + card
}
