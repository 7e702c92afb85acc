// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/site"
	"github.com/aicoding-caret/caretdocs/i18n"
)

// HomeData is the landing page.
type HomeData struct {
	Locale locale.Locale
	Copy   site.HomeCopy
	Vars   []any
}

// Home renders the landing page hero with the language switcher and the
// link into the docs.
func Home(data HomeData) templ.Component {
	return render(func(ctx context.Context, p *page) error {
		p.raw(`<section class="home-hero">` + "\n<h1 class=\"hero__title\">")
		p.text(i18n.Tr(ctx, data.Copy.HeroTitle, data.Vars...))
		p.raw("</h1>\n<p class=\"hero__description\">")
		p.text(i18n.Tr(ctx, data.Copy.SiteDescription, data.Vars...))
		p.raw("</p>\n")

		p.raw(`<div class="lang-switch">`)

		for _, l := range languageOptions(data.Locale) {
			languageButton(p, l, "button button--sm")
		}

		p.raw("</div>\n")

		p.raw(`<div class="lang-cta"><a class="button button--primary button--lg"`)
		p.attr("href", data.Copy.DocsHref)
		p.raw(">")
		p.text(i18n.Tr(ctx, data.Copy.DocsCTA, data.Vars...))
		p.raw("</a></div>\n</section>\n")

		return nil
	})
}
