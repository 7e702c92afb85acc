// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// The code in this file redirects well-known paths that browsers and
// crawlers request by convention to where the files actually live.
//
// Add more redirects in (*Router).DefineRoutes

package router

import (
	"net/http"
)

// redirectTo returns a handler that permanently redirects to target,
// preserving the query string.
//
// Example:   /favicon.ico   ->   /img/favicon.svg
func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := target
		if r.URL.RawQuery != "" {
			location += "?" + r.URL.RawQuery
		}

		http.Redirect(w, r, location, http.StatusPermanentRedirect)
	}
}
