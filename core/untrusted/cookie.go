// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"net/url"
	"time"

	"github.com/aicoding-caret/caretdocs/core/cookie"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/server/utils"
)

// SameSite=Lax allows cookies on top-level navigations, so the preference
// applies when users arrive from external links.
const CookieSameSite = http.SameSiteLaxMode

// Cookies will expire in a year from when they are set.
const cookieMaxAge = 365 * 24 * time.Hour

// Clear a cookie by setting its expiration date to this
var cookieExpireDelete = time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

func createCookieUnencoded(name cookie.CookieName, value string, expires time.Time, isSecure bool) http.Cookie {
	return http.Cookie{
		Name:     string(name),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   isSecure,
		HttpOnly: cookie.IsHttpOnly(name),
		SameSite: CookieSameSite,
	}
}

func GetCookie(r *http.Request, name cookie.CookieName) string {
	cookie, err := r.Cookie(string(name))
	if err != nil {
		return ""
	}

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}

	return value
}

func SetCookie(w http.ResponseWriter, r *http.Request, name cookie.CookieName, value string) {
	if value == "" {
		ClearCookie(w, r, name)
	} else {
		cookie := createCookieUnencoded(
			name, url.QueryEscape(value),
			time.Now().Add(cookieMaxAge),
			utils.IsConnectionSecure(r))
		http.SetCookie(w, &cookie)
	}
}

func ClearCookie(w http.ResponseWriter, r *http.Request, name cookie.CookieName) {
	cookie := createCookieUnencoded(
		name, "",
		cookieExpireDelete,
		utils.IsConnectionSecure(r))
	http.SetCookie(w, &cookie)
}

// GetPreferredLocale returns the stored locale preference, or "" when the
// cookie is missing or names an unsupported locale.
func GetPreferredLocale(r *http.Request) string {
	l, ok := locale.Parse(GetCookie(r, cookie.LangCookie))
	if !ok {
		return ""
	}

	return string(l)
}

// SetPreferredLocale stores l as the preferred locale.
func SetPreferredLocale(w http.ResponseWriter, r *http.Request, l locale.Locale) {
	SetCookie(w, r, cookie.LangCookie, string(l))
}
