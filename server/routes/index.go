// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/aicoding-caret/caretdocs/assets/views"
	"github.com/aicoding-caret/caretdocs/core/site"
	"github.com/aicoding-caret/caretdocs/i18n"
	"github.com/aicoding-caret/caretdocs/server/request_context"
)

// IndexPage is the handler for the site root.
//
// The locale comes from the preferred locale cookie, then Accept-Language.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	rc := request_context.FromRequest(r)

	homeCopy := site.NewHomeCopy(rc.Locale)
	vars := site.Vars(rc.Brand, rc.Locale)

	data := newPageData(r,
		i18n.Tr(ctx, homeCopy.SiteTitle, vars...),
		i18n.Tr(ctx, homeCopy.SiteDescription, vars...))

	// The root has no per-locale twin; the locale roots redirect into the docs.
	data.CanonicalURL = rc.CommonData.SiteURL + "/"
	data.Alternates = nil

	return renderPage(w, r, data, views.Home(views.HomeData{
		Locale: rc.Locale,
		Copy:   homeCopy,
		Vars:   vars,
	}))
}
