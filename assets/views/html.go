// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/aicoding-caret/caretdocs/core/site"
	"github.com/aicoding-caret/caretdocs/i18n"
)

// page accumulates markup before it is written in one call.
type page struct {
	strings.Builder
}

// raw appends trusted markup.
func (p *page) raw(parts ...string) {
	for _, s := range parts {
		p.WriteString(s)
	}
}

// text appends escaped text.
func (p *page) text(s string) {
	p.WriteString(templ.EscapeString(s))
}

// attr appends ` name="value"` with value escaped.
func (p *page) attr(name, value string) {
	p.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// link appends an anchor for l.
func (p *page) link(ctx context.Context, l site.Link, vars []any, class string) {
	p.raw("<a")
	p.attr("href", l.Href)

	if class != "" {
		p.attr("class", class)
	}

	if l.External {
		p.raw(` target="_blank" rel="noopener noreferrer"`)
	}

	p.raw(">")
	p.text(label(ctx, l, vars))
	p.raw("</a>")
}

// label returns the text of l in the locale of ctx.
func label(ctx context.Context, l site.Link, vars []any) string {
	switch {
	case l.Literal:
		return l.Label
	case l.Context != "":
		return i18n.TrC(ctx, l.Context, l.Label, vars...)
	default:
		return i18n.Tr(ctx, l.Label, vars...)
	}
}

func render(build func(ctx context.Context, p *page) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var p page
		if err := build(ctx, &p); err != nil {
			return err
		}

		_, err := io.WriteString(w, p.String())

		return err
	})
}
