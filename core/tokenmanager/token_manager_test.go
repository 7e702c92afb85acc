// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tokenmanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobin(t *testing.T) {
	t.Parallel()

	tm := New([]string{"a", "", "b"}, time.Second, time.Minute, RoundRobin)
	require.Equal(t, 2, tm.Len())

	got := []string{tm.GetToken().Value, tm.GetToken().Value, tm.GetToken().Value}
	assert.Equal(t, []string{"a", "b", "a"}, got)
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	tm := New(nil, time.Second, time.Minute, RoundRobin)
	assert.Nil(t, tm.GetToken())
	tm.MarkTokenStatus(nil, TimedOut)
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tm := New([]string{"a", "b"}, time.Second, 3*time.Second, RoundRobin)
	tm.now = func() time.Time { return now }

	a := tm.GetToken()
	require.Equal(t, "a", a.Value)

	tm.MarkTokenStatus(a, TimedOut)
	assert.Equal(t, now.Add(time.Second), a.timeoutUntil)

	// Only b is healthy while a backs off.
	assert.Equal(t, "b", tm.GetToken().Value)
	assert.Equal(t, "b", tm.GetToken().Value)

	tm.MarkTokenStatus(a, TimedOut)
	tm.MarkTokenStatus(a, TimedOut)
	assert.Equal(t, now.Add(3*time.Second), a.timeoutUntil, "capped at max backoff")

	now = now.Add(3 * time.Second)
	values := map[string]bool{tm.GetToken().Value: true, tm.GetToken().Value: true}
	assert.True(t, values["a"], "a is revived after its timeout")

	tm.MarkTokenStatus(a, Good)
	assert.Zero(t, a.failureCount)
}

func TestFallbackWhenAllTimedOut(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tm := New([]string{"a", "b"}, time.Second, time.Minute, LeastRecentlyUsed)
	tm.now = func() time.Time { return now }

	a, b := tm.tokens[0], tm.tokens[1]
	tm.MarkTokenStatus(a, TimedOut)
	tm.MarkTokenStatus(b, TimedOut)
	tm.MarkTokenStatus(b, TimedOut)

	assert.Same(t, a, tm.GetToken())

	tm.ResetAllTokens()
	assert.Equal(t, Good, b.status)
}
