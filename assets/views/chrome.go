// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"

	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/site"
	"github.com/aicoding-caret/caretdocs/i18n"
)

func navbar(ctx context.Context, p *page, data PageData) {
	nav := data.Navbar

	p.raw(`<nav class="navbar">` + "\n")
	p.raw(`<a class="navbar__brand"`)
	p.attr("href", site.DocsHome(nav.Locale))
	p.raw(">")
	p.text(i18n.Tr(ctx, "{{.Brand}} Docs", data.Vars...))
	p.raw("</a>\n")

	p.link(ctx, nav.Service, data.Vars, "navbar__item")
	p.raw("\n")

	p.raw(`<details class="navbar__dropdown navbar__download"><summary>`)
	p.text(i18n.Tr(ctx, nav.Download.Label))
	p.raw("</summary>\n<ul>\n")

	for _, l := range nav.Download.Links {
		p.raw("<li>")
		p.link(ctx, l, data.Vars, "dropdown__link")
		p.raw("</li>\n")
	}

	p.raw("</ul>\n</details>\n")

	languageSwitch(ctx, p, nav.Language)

	p.link(ctx, nav.GitHub, data.Vars, "navbar__item navbar__github")
	p.raw("\n</nav>\n")
}

// languageSwitch posts the chosen locale so the preference is stored before
// the redirect to the link target.
func languageSwitch(ctx context.Context, p *page, d site.Dropdown) {
	p.raw(`<details class="navbar__dropdown navbar__language"><summary>`)
	p.text(i18n.Tr(ctx, d.Label))
	p.raw("</summary>\n<ul>\n")

	for _, l := range d.Links {
		p.raw("<li>")
		languageButton(p, l, "dropdown__link")
		p.raw("</li>\n")
	}

	p.raw("</ul>\n</details>\n")
}

func languageButton(p *page, l site.Link, class string) {
	if l.Active {
		class += " " + class + "--active"
	}

	p.raw(`<form method="post" action="/language">`)
	p.raw(`<input type="hidden" name="path"`)
	p.attr("value", l.Href)
	p.raw(`><button type="submit" name="locale"`)
	p.attr("value", string(l.Locale))
	p.attr("lang", l.Locale.HrefLang())
	p.attr("class", class)
	p.raw(">")
	p.text(l.Label)
	p.raw("</button></form>")
}

func footer(ctx context.Context, p *page, f site.Footer, vars []any) {
	p.raw(`<footer class="footer">` + "\n")
	p.raw(`<div class="footer__links">` + "\n")

	for _, section := range f.Sections {
		p.raw(`<div class="footer__col">` + "\n<h4>")
		p.text(i18n.Tr(ctx, section.Title, vars...))
		p.raw("</h4>\n<ul>\n")

		for _, l := range section.Links {
			p.raw("<li>")
			p.link(ctx, l, vars, "footer__link")
			p.raw("</li>\n")
		}

		p.raw("</ul>\n</div>\n")
	}

	p.raw("</div>\n")

	if len(f.Address) > 0 {
		p.raw(`<address class="footer__address">` + "\n")

		for _, line := range f.Address {
			p.raw("<p>")
			p.text(line)
			p.raw("</p>\n")
		}

		p.raw("</address>\n")
	}

	p.raw(`<div class="footer__copyright">`)
	p.text(i18n.Tr(ctx, f.Copyright, vars...))
	p.raw("</div>\n</footer>\n")
}

// languageOptions lists every locale for the home page switcher.
func languageOptions(active locale.Locale) []site.Link {
	links := make([]site.Link, 0, len(locale.All()))
	for _, l := range locale.All() {
		links = append(links, site.Link{
			Label:   l.Label(),
			Literal: true,
			Href:    "/",
			Active:  l == active,
			Locale:  l,
		})
	}

	return links
}
