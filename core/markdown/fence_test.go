// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []bool // per line: inside a fenced block
	}{
		{
			name: "backtick block",
			doc:  "a\n```go\nx\n```\nb",
			want: []bool{false, true, true, true, false},
		},
		{
			name: "backticks inside tildes",
			doc:  "~~~md\n```js\nimport x from 'y'\n```\n~~~\nafter",
			want: []bool{true, true, true, true, true, false},
		},
		{
			name: "tildes inside backticks",
			doc:  "```\n~~~\n```\nafter",
			want: []bool{true, true, true, false},
		},
		{
			name: "shorter run does not close",
			doc:  "````\n```\ncode\n```\n````\nafter",
			want: []bool{true, true, true, true, true, false},
		},
		{
			name: "longer run closes",
			doc:  "```\ncode\n`````\nafter",
			want: []bool{true, true, true, false},
		},
		{
			name: "info string does not close",
			doc:  "```\n```js\n```\nafter",
			want: []bool{true, true, true, false},
		},
		{
			name: "inline code is not a fence",
			doc:  "```x``` text\nafter",
			want: []bool{false, false},
		},
		{
			name: "two backticks are not a fence",
			doc:  "``\nafter",
			want: []bool{false, false},
		},
		{
			name: "indented fence in a list",
			doc:  "- item\n    ```sh\n    npm i\n    ```\n- next",
			want: []bool{false, true, true, true, false},
		},
		{
			name: "unclosed block runs to the end",
			doc:  "~~~\n```\nx",
			want: []bool{true, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				f   Fence
				got []bool
			)

			for _, line := range strings.Split(tt.doc, "\n") {
				got = append(got, f.Step(line))
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFenceOpen(t *testing.T) {
	t.Parallel()

	var f Fence
	assert.False(t, f.Open())

	f.Step("~~~~")
	assert.True(t, f.Open())

	f.Step("~~~")
	assert.True(t, f.Open())

	f.Step("~~~~  ")
	assert.False(t, f.Open())
}
