// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package defines the cookie names used by this application.
*/
package cookie

type CookieName string

// Cookie names defined as constants.
//
// NOTE: We don't use the `__Host-` prefix so that preferences survive on
// plain-HTTP preview deployments.
const (
	// LangCookie stores the preferred documentation locale. It keeps the
	// storage key the site used before preferences moved server side.
	LangCookie CookieName = "caretPreferredLang"
)

// AllCookieNames defines all cookies that can be set by the user.
var AllCookieNames = []CookieName{
	LangCookie,
}

// httpOnlyCookies are never read by page scripts.
var httpOnlyCookies = map[CookieName]bool{}

// IsHttpOnly reports whether name must be hidden from page scripts.
// The language preference stays readable so client-side redirects can use it.
func IsHttpOnly(name CookieName) bool {
	return httpOnlyCookies[name]
}
