// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/aicoding-caret/caretdocs/assets/views"
	"github.com/aicoding-caret/caretdocs/core/site"
	"github.com/aicoding-caret/caretdocs/i18n"
	"github.com/aicoding-caret/caretdocs/server/request_context"
)

// ErrorPage renders an error page for the status stored in the request context.
//
// The caller writes the status line.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rc := request_context.FromRequest(r)
	vars := site.Vars(rc.Brand, rc.Locale)

	data := newPageData(r, i18n.Tr(ctx, views.ErrorTitle(rc.StatusCode))+" | "+siteTitle(ctx, vars), "")
	data.CanonicalURL = ""
	data.Alternates = nil

	body := views.Error(views.ErrorData{
		StatusCode: rc.StatusCode,
		DocsHref:   site.DocsHome(rc.Locale),
	})

	if err := views.Layout(data, body).Render(ctx, w); err != nil {
		log.Err(err).
			Str("request_id", rc.RequestID).
			Msg("Failed to render the error page")
	}
}
