// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"

	"github.com/aicoding-caret/caretdocs/core/locale"
)

// NormalizeURL is a middleware that handles URL normalization by:
// 1. Lowercasing a locale prefix written in another case ("/KO/x" to "/ko/x").
// 2. Removing trailing slashes from URLs (except root).
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if path, ok := lowercaseLocalePrefix(r.URL.Path); ok {
		redirectToPath(w, r, path, http.StatusMovedPermanently)

		return
	}

	// Check for trailing slash and redirect if found
	if hasTrailingSlash(r) {
		redirectToPath(w, r, strings.TrimRight(r.URL.Path, "/"), http.StatusPermanentRedirect)

		return
	}

	// No normalization needed, continue to next handler
	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// lowercaseLocalePrefix returns path with its first segment lowercased when
// that segment names a locale in a different case.
func lowercaseLocalePrefix(path string) (string, bool) {
	if len(path) < 2 || path[0] != '/' {
		return "", false
	}

	seg, rest, _ := strings.Cut(path[1:], "/")
	lower := strings.ToLower(seg)

	if lower == seg || !locale.Locale(lower).IsSupported() {
		return "", false
	}

	if rest == "" && !strings.HasSuffix(path, "/") {
		return "/" + lower, true
	}

	return "/" + lower + "/" + rest, true
}

// redirectToPath redirects to path on the same origin, keeping the query.
//
// The path arrives before ServeMux has cleaned it, so leading slashes and
// backslashes are collapsed: "//evil.example" would otherwise be followed by
// browsers as a protocol-relative URL.
func redirectToPath(w http.ResponseWriter, r *http.Request, path string, code int) {
	path = "/" + strings.TrimLeft(path, `/\`)

	target := *r.URL
	target.Path = path
	target.RawPath = ""

	// Only the path and query are kept.
	target.Scheme = ""
	target.Host = ""
	target.User = nil

	http.Redirect(w, r, target.String(), code)
}
