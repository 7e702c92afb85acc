// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role     Role
		hasFinal bool
		want     string
	}{
		{Topic, true, "은"},
		{Topic, false, "는"},
		{Subject, true, "이"},
		{Subject, false, "가"},
		{Object, true, "을"},
		{Object, false, "를"},
		{And, true, "과"},
		{And, false, "와"},
		{To, true, "으로"},
		{To, false, "로"},
		{TopicQuestion, true, "이란"},
		{TopicQuestion, false, "란"},
		{Of, true, "의"},
		{From, false, "에서"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Select(tt.role, tt.hasFinal))
		})
	}
}

func TestSelectNonDistinguishingRoles(t *testing.T) {
	t.Parallel()

	for _, role := range []Role{Of, At, From, Also, Only} {
		assert.Equal(t, Select(role, true), Select(role, false), "role %s", role)
		assert.False(t, Distinguishes(role), "role %s", role)
	}

	assert.NotEqual(t, Select(Topic, true), Select(Topic, false))
	assert.True(t, Distinguishes(Topic))
}

func TestSelectUnknownRole(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Select(Role("vocative"), true))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	r, ok := ParseRole("topicQuestion")
	assert.True(t, ok)
	assert.Equal(t, TopicQuestion, r)

	_, ok = ParseRole("TOPIC")
	assert.False(t, ok)

	assert.Len(t, Roles(), 11)
}

func TestHasFinalConsonant(t *testing.T) {
	t.Parallel()

	assert.True(t, HasFinalConsonant("캐럿"))
	assert.False(t, HasFinalConsonant("캐러티"))
	assert.True(t, HasFinalConsonant("문서"+"들"))
	assert.False(t, HasFinalConsonant("Careti"))
	assert.False(t, HasFinalConsonant(""))
}

func TestAttach(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "캐럿은", Attach("캐럿", Topic))
	assert.Equal(t, "캐러티는", Attach("캐러티", Topic))
	assert.Equal(t, "캐럿으로", Attach("캐럿", To))
	assert.Equal(t, "캐러티로", Attach("캐러티", To))
}
