// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/aicoding-caret/caretdocs/core/content"
	"github.com/aicoding-caret/caretdocs/i18n"
)

// DocData is one rendered documentation page.
type DocData struct {
	Page    *content.Page
	EditURL string
}

// Doc renders the article body with its table of contents.
func Doc(data DocData) templ.Component {
	return render(func(ctx context.Context, p *page) error {
		p.raw(`<div class="doc">` + "\n")

		if data.Page.Fallback {
			p.raw(`<div class="admonition admonition-info doc__fallback">`)
			p.text(i18n.Tr(ctx, "This page has not been translated yet. You are reading the English version."))
			p.raw("</div>\n")
		}

		p.raw(`<article class="markdown">` + "\n")

		// Page HTML is sanitized when rendered by content.Store.
		p.raw(data.Page.HTML)
		p.raw("</article>\n")

		if len(data.Page.TOC) > 0 {
			p.raw(`<nav class="toc"><h2>`)
			p.text(i18n.Tr(ctx, "On this page"))
			p.raw("</h2>\n<ul>\n")

			for _, h := range data.Page.TOC {
				p.raw("<li")
				p.attr("class", "toc__h"+strconv.Itoa(h.Level))
				p.raw("><a")
				p.attr("href", "#"+h.ID)
				p.raw(">")
				p.text(h.Text)
				p.raw("</a></li>\n")
			}

			p.raw("</ul>\n</nav>\n")
		}

		if data.EditURL != "" {
			p.raw(`<a class="doc__edit" target="_blank" rel="noopener noreferrer"`)
			p.attr("href", data.EditURL)
			p.raw(">")
			p.text(i18n.Tr(ctx, "Edit this page"))
			p.raw("</a>\n")
		}

		p.raw("</div>\n")

		return nil
	})
}
