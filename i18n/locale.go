// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/aicoding-caret/caretdocs/core/locale"
)

// BaseLocale is the language msgids are written in.
const BaseLocale = locale.Default

var baseTag = language.Make(string(BaseLocale))

// Languages returns the tags that have a catalogue, plus the base tag,
// sorted by tag string. It panics if Setup has not run.
func Languages() []language.Tag {
	if matcher == nil {
		panic("i18n: Setup must be called before calling Languages")
	}

	out := slices.Clone(supportedTags)
	slices.SortFunc(out, func(a, b language.Tag) int {
		return strings.Compare(a.String(), b.String())
	})

	return out
}
