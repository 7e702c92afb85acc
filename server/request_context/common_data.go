// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package request_context

import (
	"net/http"

	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/cookie"
	"github.com/aicoding-caret/caretdocs/core/untrusted"
	"github.com/aicoding-caret/caretdocs/server/utils"
)

// PageCommonData holds common variables accessible in views and handlers.
//
// Usage:
//
//	// In an HTTP handler:
//	rc := request_context.FromRequest(r)
//	cd := rc.CommonData
//	// Now you can access fields like cd.SiteURL, cd.CurrentPath, etc.
type PageCommonData struct {
	// BaseURL is the origin URL (scheme + host) of the current request.
	BaseURL string

	// SiteURL is the public origin of the brand, used for canonical and
	// alternate links.
	SiteURL string

	// CurrentPath is the URL path from request (e.g., "/ko/getting-started").
	CurrentPath string

	// CurrentPathWithParams is the full request URI including query parameters.
	CurrentPathWithParams string

	// StoredLocale is the raw preferred locale cookie, empty when unset or invalid.
	StoredLocale string

	// Queries is the URL query parameters (first value only for each key).
	Queries map[string]string

	// CookieList is all caretdocs cookies as key-value map.
	CookieList map[cookie.CookieName]string
}

// PopulatePageCommonData fills the PageCommonData struct from the request.
func PopulatePageCommonData(r *http.Request, b brand.Brand, data *PageCommonData) {
	data.BaseURL = utils.GetOriginFromRequest(r)
	data.SiteURL = siteURL(b)
	data.CurrentPath = r.URL.Path
	data.CurrentPathWithParams = r.URL.RequestURI()
	data.StoredLocale = untrusted.GetPreferredLocale(r)

	data.Queries = make(map[string]string)

	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			data.Queries[k] = v[0]
		}
	}

	data.CookieList = make(map[cookie.CookieName]string, len(cookie.AllCookieNames))
	for _, name := range cookie.AllCookieNames {
		data.CookieList[name] = untrusted.GetCookie(r, name)
	}
}

// siteURL returns the configured site URL for the configured brand and the
// brand's own docs origin otherwise.
func siteURL(b brand.Brand) string {
	if b.ID == config.Global.Site.Brand && config.Global.Site.URL != "" {
		return config.Global.Site.URL
	}

	return b.DocsURL()
}
