// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This file provides network-based rate limiting for HTTP requests.

Clients are grouped by their IP network, and every network shares one token
bucket. Buckets idle for longer than LimiterExpiryDuration are dropped.
*/
package limiter

import (
	"net/netip"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	LimiterExpiryDuration = time.Hour       // How long to keep limiters in memory before cleanup.
	CleanupInterval       = 5 * time.Minute // Interval between limiter cleanup runs.
)

// Config holds the limiter settings.
type Config struct {
	RequestsPerMinute int
	Burst             int

	// IPv4Prefix and IPv6Prefix are the network sizes clients are grouped by.
	IPv4Prefix int
	IPv6Prefix int

	// PassIPs lists addresses and CIDRs that are never limited.
	PassIPs []string
}

// Limiter rate limits requests per client network.
//
// A Limiter is safe for concurrent use.
type Limiter struct {
	cfg      Config
	limiters sync.Map // network string -> *limiterWrapper

	cleanupMu     sync.Mutex
	lastCleanupAt time.Time

	// timeNow is replaced in tests.
	timeNow func() time.Time
}

// limiterWrapper holds a rate limiter and additional metadata.
type limiterWrapper struct {
	limiter    *rate.Limiter
	network    string     // Associated network identifier
	lastAccess time.Time  // Last time limiter was accessed
	mu         sync.Mutex // mutex for operations on this limiter
}

// New returns a Limiter for cfg.
func New(cfg Config) *Limiter {
	return &Limiter{
		cfg:     cfg,
		timeNow: time.Now,
	}
}

// perSecond converts the configured requests per minute to a token rate.
func (l *Limiter) perSecond() rate.Limit {
	return rate.Limit(float64(l.cfg.RequestsPerMinute) / float64(time.Minute/time.Second))
}

// networkOf groups ip by the configured prefixes.
func (l *Limiter) networkOf(ip netip.Addr) string {
	return networkPrefix(ip, l.cfg.IPv4Prefix, l.cfg.IPv6Prefix).String()
}

// getOrCreateLimiter returns the limiterWrapper for network, creating it on first use.
func (l *Limiter) getOrCreateLimiter(network string) *limiterWrapper {
	if value, ok := l.limiters.Load(network); ok {
		if limWrapper, ok := value.(*limiterWrapper); ok {
			return limWrapper
		}
	}

	value, _ := l.limiters.LoadOrStore(network, &limiterWrapper{
		limiter:    rate.NewLimiter(l.perSecond(), l.cfg.Burst),
		network:    network,
		lastAccess: l.timeNow(),
	})

	limWrapper, _ := value.(*limiterWrapper)

	return limWrapper
}

// checkRateLimit attempts to consume 1 token from limWrapper at now.
//
// It returns the number of whole tokens left and whether the request is
// allowed.
func checkRateLimit(limWrapper *limiterWrapper, now time.Time) (int, bool) {
	limWrapper.mu.Lock()
	defer limWrapper.mu.Unlock()

	// Update last access time
	limWrapper.lastAccess = now

	allowed := limWrapper.limiter.AllowN(now, 1)

	return max(int(limWrapper.limiter.TokensAt(now)), 0), allowed
}

// retryAfter returns how long until limWrapper holds one token again.
func retryAfter(limWrapper *limiterWrapper, now time.Time) time.Duration {
	limWrapper.mu.Lock()
	defer limWrapper.mu.Unlock()

	lim := limWrapper.limiter.Limit()
	deficit := 1 - limWrapper.limiter.TokensAt(now)

	if deficit <= 0 || lim <= 0 {
		return 0
	}

	return time.Duration(deficit / float64(lim) * float64(time.Second))
}

// maybeCleanup starts a cleanup run when CleanupInterval has passed since the last one.
func (l *Limiter) maybeCleanup() {
	now := l.timeNow()

	l.cleanupMu.Lock()

	if l.lastCleanupAt.IsZero() {
		l.lastCleanupAt = now
	}

	due := now.Sub(l.lastCleanupAt) >= CleanupInterval
	if due {
		l.lastCleanupAt = now
	}

	l.cleanupMu.Unlock()

	if due {
		go l.cleanupExpiredLimiters(now)
	}
}

// cleanupExpiredLimiters removes limiters that haven't been accessed for the expiry duration.
func (l *Limiter) cleanupExpiredLimiters(now time.Time) int {
	var keysToDelete []any

	// Collect keys to delete in a slice to avoid deleting during Range()
	l.limiters.Range(func(key, value any) bool {
		limWrapper, ok := value.(*limiterWrapper)
		if !ok {
			keysToDelete = append(keysToDelete, key)

			return true
		}

		limWrapper.mu.Lock()

		lastAccess := limWrapper.lastAccess
		limWrapper.mu.Unlock()

		if now.Sub(lastAccess) > LimiterExpiryDuration {
			keysToDelete = append(keysToDelete, key)
		}

		return true
	})

	for _, key := range keysToDelete {
		l.limiters.Delete(key)
	}

	if len(keysToDelete) > 0 {
		log.Info().Int("count", len(keysToDelete)).
			Msg("Cleaned up expired limiters")
	}

	return len(keysToDelete)
}
