// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/locale"
)

func TestPreprocessFences(t *testing.T) {
	t.Parallel()

	caret := brand.MustLookup(brand.Caret)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "backticks inside tildes stay code",
			in:   "~~~md\n```js\nimport x from 'y'\n<BrandName />\n```\n~~~",
			want: "~~~md\n```js\nimport x from 'y'\n<BrandName />\n```\n~~~",
		},
		{
			name: "shorter run does not close a long fence",
			in:   "````\n```\nimport a from 'b'\n```\n<BrandName />\n````\n<BrandName />",
			want: "````\n```\nimport a from 'b'\n```\n<BrandName />\n````\nCaret",
		},
		{
			name: "content after a closed fence is processed",
			in:   "```\n<BrandName />\n```\nimport Tabs from '@theme/Tabs';\n<BrandName />",
			want: "```\n<BrandName />\n```\nCaret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, preprocess(tt.in, caret, locale.EN))
		})
	}
}

func TestPreprocessModuleLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		dropped bool
	}{
		{"import Tabs from '@theme/Tabs';", true},
		{`import { Note, Tip } from "@/components"`, true},
		{"import * as Icons from './icons'", true},
		{"import './styles.css';", true},
		{"export const meta = { title: 'x' }", true},
		{"export default function Layout() {}", true},
		{"import your settings from VS Code.", false},
		{"export your chat history before upgrading", false},
		{"important: read this first", false},
	}

	careti := brand.MustLookup(brand.Careti)

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got := preprocess(tt.line, careti, locale.EN)
			if tt.dropped {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.line, got)
			}
		})
	}
}
