// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/ogimage"
	"github.com/aicoding-caret/caretdocs/core/site"
	"github.com/aicoding-caret/caretdocs/i18n"
)

// PageData is the chrome shared by every page.
type PageData struct {
	Title       string // final, already translated
	Description string

	Locale locale.Locale
	Brand  brand.ID

	CanonicalURL string
	OGImage      string
	Alternates   []locale.Alternate

	Navbar site.Navbar
	Footer site.Footer

	// Vars are the template variables of chrome labels, see site.Vars.
	Vars []any

	AssetVersion string
}

// Layout wraps body in the document head, navbar and footer.
func Layout(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var p page

		p.raw("<!DOCTYPE html>\n<html")
		p.attr("lang", data.Locale.HrefLang())
		p.attr("data-brand", string(data.Brand))
		p.raw(">\n<head>\n")
		head(&p, data)
		p.raw("</head>\n<body>\n")

		p.raw(`<a class="skip-link" href="#main">`)
		p.text(i18n.Tr(ctx, "Skip to main content"))
		p.raw("</a>\n")

		navbar(ctx, &p, data)

		p.raw(`<main id="main">` + "\n")

		if _, err := io.WriteString(w, p.String()); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		p.Reset()
		p.raw("</main>\n")
		footer(ctx, &p, data.Footer, data.Vars)
		p.raw("</body>\n</html>\n")

		_, err := io.WriteString(w, p.String())

		return err
	})
}

func head(p *page, data PageData) {
	p.raw(`<meta charset="utf-8">` + "\n")
	p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	p.raw("<title>")
	p.text(data.Title)
	p.raw("</title>\n")

	if data.Description != "" {
		p.raw(`<meta name="description"`)
		p.attr("content", data.Description)
		p.raw(">\n")
	}

	if data.CanonicalURL != "" {
		p.raw(`<link rel="canonical"`)
		p.attr("href", data.CanonicalURL)
		p.raw(">\n")
	}

	for _, alt := range data.Alternates {
		p.raw(`<link rel="alternate"`)
		p.attr("hreflang", alt.HrefLang)
		p.attr("href", alt.Href)
		p.raw(">\n")
	}

	meta(p, "property", "og:type", "website")
	meta(p, "property", "og:title", data.Title)
	meta(p, "property", "og:description", data.Description)
	meta(p, "property", "og:url", data.CanonicalURL)
	meta(p, "property", "og:image", data.OGImage)
	meta(p, "property", "og:image:width", strconv.Itoa(ogimage.Width))
	meta(p, "property", "og:image:height", strconv.Itoa(ogimage.Height))
	meta(p, "name", "twitter:card", "summary_large_image")
	meta(p, "name", "twitter:image", data.OGImage)

	p.raw(`<link rel="icon" href="/img/favicon.svg" type="image/svg+xml">` + "\n")
	p.raw(`<link rel="stylesheet"`)
	p.attr("href", "/css/site.css?v="+data.AssetVersion)
	p.raw(">\n")
}

func meta(p *page, kind, name, content string) {
	if content == "" {
		return
	}

	p.raw("<meta")
	p.attr(kind, name)
	p.attr("content", content)
	p.raw(">\n")
}
