// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/aicoding-caret/caretdocs/i18n"
)

// ErrorData describes a failed request.
type ErrorData struct {
	StatusCode int
	DocsHref   string
}

// ErrorTitle returns the msgid of the heading for status.
func ErrorTitle(status int) string {
	if status == http.StatusNotFound {
		return "Page not found"
	}

	return "Something went wrong"
}

// Error renders a 404 or generic error message. Error details are logged,
// never shown.
func Error(data ErrorData) templ.Component {
	return render(func(ctx context.Context, p *page) error {
		message := "An unexpected error occurred. Please try again later."
		if data.StatusCode == http.StatusNotFound {
			message = "The page you are looking for does not exist."
		}

		p.raw(`<section class="error-page">` + "\n<h1>")
		p.text(i18n.Tr(ctx, ErrorTitle(data.StatusCode)))
		p.raw("</h1>\n<p>")
		p.text(i18n.Tr(ctx, message))
		p.raw("</p>\n<a class=\"button button--primary\"")
		p.attr("href", data.DocsHref)
		p.raw(">")
		p.text(i18n.Tr(ctx, "Go to the docs home"))
		p.raw("</a>\n</section>\n")

		return nil
	})
}
