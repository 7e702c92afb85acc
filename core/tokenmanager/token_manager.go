// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tokenmanager rotates API keys and backs off keys that the upstream
rejected or throttled.
*/
package tokenmanager

import (
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// Possible token states.
const (
	Good     tokenStatus = iota // usable
	TimedOut                    // skipped until timeoutUntil
)

type tokenStatus int

// Load balancing methods accepted by New.
const (
	RoundRobin        = "round-robin"
	Random            = "random"
	LeastRecentlyUsed = "least-recently-used"
)

// Token is one API key and its health.
type Token struct {
	Value string

	status       tokenStatus
	timeoutUntil time.Time
	failureCount int
	lastUsed     time.Time
}

// TokenManager selects among a fixed set of tokens.
type TokenManager struct {
	tokens              []*Token
	baseTimeout         time.Duration
	maxBackoffTime      time.Duration
	loadBalancingMethod string
	currentIndex        int
	now                 func() time.Time
	mu                  sync.Mutex
}

// New creates a TokenManager over values. Empty values are dropped.
func New(values []string, baseTimeout, maxBackoffTime time.Duration, loadBalancingMethod string) *TokenManager {
	tokens := make([]*Token, 0, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}

		tokens = append(tokens, &Token{Value: v, status: Good})
	}

	return &TokenManager{
		tokens:              tokens,
		baseTimeout:         baseTimeout,
		maxBackoffTime:      maxBackoffTime,
		loadBalancingMethod: loadBalancingMethod,
		now:                 time.Now,
	}
}

// Len returns the number of managed tokens.
func (tm *TokenManager) Len() int {
	return len(tm.tokens)
}

// GetToken selects a token, or returns nil when there are none.
//
// When every token is timed out, the one whose timeout ends first is
// returned anyway, reset to good once its timeout has passed.
func (tm *TokenManager) GetToken() *Token {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if len(tm.tokens) == 0 {
		return nil
	}

	now := tm.now()

	healthy := tm.healthyTokens(now)
	if len(healthy) == 0 {
		return tm.fallbackToken(now)
	}

	var selected *Token

	switch tm.loadBalancingMethod {
	case Random:
		selected = healthy[rand.IntN(len(healthy))] // #nosec:G404 - key selection needs no crypto randomness
	case LeastRecentlyUsed:
		selected = slices.MinFunc(healthy, func(a, b *Token) int { return a.lastUsed.Compare(b.lastUsed) })
	default:
		if tm.currentIndex >= len(healthy) {
			tm.currentIndex = 0
		}

		selected = healthy[tm.currentIndex]
		tm.currentIndex++
	}

	selected.lastUsed = now

	return selected
}

// MarkTokenStatus records the outcome of a request made with token.
//
// Marking a token TimedOut applies exponential backoff starting at the base
// timeout and capped at the maximum backoff; marking it Good resets it.
func (tm *TokenManager) MarkTokenStatus(token *Token, status tokenStatus) {
	if token == nil {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	token.status = status

	if status != TimedOut {
		token.failureCount = 0

		return
	}

	token.failureCount++

	const exponentialBase = 2

	timeout := time.Duration(math.Min(
		float64(tm.baseTimeout)*math.Pow(exponentialBase, float64(token.failureCount-1)),
		float64(tm.maxBackoffTime),
	))

	token.timeoutUntil = tm.now().Add(timeout)
}

// ResetAllTokens marks every token good.
func (tm *TokenManager) ResetAllTokens() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for _, token := range tm.tokens {
		token.status = Good
		token.failureCount = 0
	}
}

// healthyTokens returns good tokens, reviving timed-out ones whose timeout has passed.
func (tm *TokenManager) healthyTokens(now time.Time) []*Token {
	healthy := make([]*Token, 0, len(tm.tokens))

	for _, token := range tm.tokens {
		if token.status == TimedOut && !now.Before(token.timeoutUntil) {
			token.status = Good
		}

		if token.status == Good {
			healthy = append(healthy, token)
		}
	}

	return healthy
}

func (tm *TokenManager) fallbackToken(now time.Time) *Token {
	best := tm.tokens[0]

	for _, token := range tm.tokens[1:] {
		if token.timeoutUntil.Before(best.timeoutUntil) {
			best = token
		}
	}

	best.lastUsed = now

	return best
}
