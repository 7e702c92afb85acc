// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"io"
	"net/http"

	"github.com/aicoding-caret/caretdocs/server/request_context"
)

const robotsRules = `User-agent: *
Allow: /
Disallow: /language
Disallow: /debug/
`

// Robots is the handler for /robots.txt.
//
// The sitemap location is absolute and follows the serving brand.
func Robots(w http.ResponseWriter, r *http.Request) error {
	siteURL := request_context.FromRequest(r).CommonData.SiteURL

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	_, err := io.WriteString(w, robotsRules+"\nSitemap: "+siteURL+"/sitemap.xml\n")

	return err
}
