// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     string = "RateLimit-Limit" // This is intended.
	HeaderRateLimitRemaining string = "RateLimit-Remaining"
)

// excludedPaths won't have traffic filtered by the limiter middleware.
var excludedPaths = []string{
	"/css/",
	"/img/",
	"/og/",
	"/robots.txt",
	"/healthz",
}

// isExcludedPath reports whether requests for path bypass the limiter.
func isExcludedPath(path string) bool {
	for _, prefix := range excludedPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// Evaluate is the entrypoint to the limiter middleware.
//
// Excluded paths and pass-listed clients are served directly. Every other
// request takes one token from its network's bucket, and is answered with
// 429 Too Many Requests when the bucket is empty.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	defer l.maybeCleanup()

	if isExcludedPath(r.URL.Path) {
		next.ServeHTTP(w, r)

		return
	}

	ip, ok := clientAddr(r)
	if !ok {
		http.Error(w, "Could not determine client address", http.StatusBadRequest)

		return
	}

	if inPassList(ip, l.cfg.PassIPs) {
		next.ServeHTTP(w, r)

		return
	}

	network := l.networkOf(ip)
	limWrapper := l.getOrCreateLimiter(network)
	now := l.timeNow()

	remaining, allowed := checkRateLimit(limWrapper, now)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(l.cfg.Burst))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))

	if !allowed {
		wait := retryAfter(limWrapper, now)

		log.Warn().
			Str("ip", ip.String()).
			Str("network", network).
			Dur("retry_after", wait).
			Msg("Request blocked, exceeded rate limit")

		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		w.Header().Set("Cache-Control", "no-store")
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}
