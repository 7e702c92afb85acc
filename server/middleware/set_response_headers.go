// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/locale"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Caretdocs-Version and Caretdocs-Revision are added dynamically in SetResponseHeaders.
	baseHeaders = http.Header{
		"Referrer-Policy":        {"strict-origin-when-cross-origin"},
		"X-Frame-Options":        {"DENY"},
		"X-Content-Type-Options": {"nosniff"},
		"Permissions-Policy":     {strings.Join(defaultPermissionsPolicy, ", ")},
	}

	contentSecurityPolicy = strings.Join([]string{
		"base-uri 'self'",
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"font-src 'self'",
		"connect-src 'self'",
		// Docs embed badges and screenshots from other hosts.
		"img-src 'self' data: https:",
		"media-src 'self' https:",
		"frame-src https://www.youtube.com https://www.youtube-nocookie.com",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ") + ";"

	// defaultPermissionsPolicy defines the default Permissions-Policy header.
	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"ambient-light-sensor=()",
		"battery=()",
		"camera=()",
		"display-capture=()",
		"document-domain=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"midi=()",
		"payment=()",
		"usb=()",
		"xr-spatial-tracking=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	setCacheControl(headers, r)

	headers.Set("Caretdocs-Version", config.BuildVersion)
	headers.Set("Caretdocs-Revision", config.Global.Build.Revision())
	headers.Set("Content-Security-Policy", contentSecurityPolicy)

	next.ServeHTTP(w, r)
}

var devCacheCleared atomic.Bool

// invalidateCacheInDevelopment clears the browser cache on the first response
// after a restart.
func invalidateCacheInDevelopment(headers http.Header) {
	if devCacheCleared.CompareAndSwap(false, true) {
		headers.Set("Clear-Site-Data", `"cache"`)
	}
}

// setCacheControl sets cache control headers by path.
//
// Doc pages are public and shared by every visitor of a host, so they use the
// configured max-age. The site root and the language endpoint depend on the
// visitor's preference and are never stored by shared caches.
func setCacheControl(headers http.Header, r *http.Request) {
	path := r.URL.Path

	// Default to only storing in the browser cache and forcing revalidation
	cacheDuration := "private, no-cache"

	switch {
	case r.Method != http.MethodGet && r.Method != http.MethodHead:
		cacheDuration = "no-store"

	case path == "/":
		headers.Add("Vary", "Cookie")
		headers.Add("Vary", "Accept-Language")

	// CSS is versioned with the instance cache id (1 week)
	case strings.HasPrefix(path, "/css/"):
		cacheDuration = "public, max-age=604800"

	// Images and social cards can be cached for 2 weeks
	case strings.HasPrefix(path, "/img/"), strings.HasPrefix(path, "/og/"):
		cacheDuration = "public, max-age=1209600"

	// robots.txt and sitemap.xml get moderate caching (1 day)
	case strings.HasSuffix(path, ".txt"), strings.HasSuffix(path, ".xml"):
		cacheDuration = "public, max-age=86400"

	case locale.HasExplicit(path):
		cacheDuration = docCacheControl()
	}

	headers.Set("Cache-Control", cacheDuration)
}

func docCacheControl() string {
	maxAge := int(config.Global.HTTPCache.MaxAge.Seconds())
	if maxAge <= 0 {
		return "private, no-cache"
	}

	value := "public, max-age=" + strconv.Itoa(maxAge)

	if swr := int(config.Global.HTTPCache.StaleWhileRevalidate.Seconds()); swr > 0 {
		value += ", stale-while-revalidate=" + strconv.Itoa(swr)
	}

	return value
}
