// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/aicoding-caret/caretdocs/assets/views"
	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/site"
	"github.com/aicoding-caret/caretdocs/i18n"
	"github.com/aicoding-caret/caretdocs/server/request_context"
)

// newPageData fills the page chrome for the current request.
func newPageData(r *http.Request, title, description string) views.PageData {
	rc := request_context.FromRequest(r)
	cd := rc.CommonData

	return views.PageData{
		Title:        title,
		Description:  description,
		Locale:       rc.Locale,
		Brand:        rc.Brand.ID,
		CanonicalURL: cd.SiteURL + cd.CurrentPath,
		OGImage:      site.OGImage(cd.SiteURL, rc.Locale),
		Alternates:   locale.AlternateLinks(cd.SiteURL, cd.CurrentPath),
		Navbar:       site.NewNavbar(rc.Brand, rc.Locale, cd.CurrentPath),
		Footer:       site.NewFooter(rc.Brand, rc.Locale),
		Vars:         site.Vars(rc.Brand, rc.Locale),
		AssetVersion: config.Global.Instance.FileServerCacheID,
	}
}

// siteTitle returns the translated site name, for example "캐럿 문서".
func siteTitle(ctx context.Context, vars []any) string {
	return i18n.Tr(ctx, site.NewHomeCopy(locale.Default).SiteTitle, vars...)
}

// renderPage writes body inside the layout as an HTML document.
func renderPage(w http.ResponseWriter, r *http.Request, data views.PageData, body templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return views.Layout(data, body).Render(r.Context(), w)
}
