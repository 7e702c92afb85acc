// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
)

// headingIDPattern matches the anchors produced by headingIDs.
var headingIDPattern = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

// headingIDs generates heading anchors that keep letters of any script, so
// "설치 방법" becomes "설치-방법" rather than a numbered placeholder.
//
// It implements parser.IDs for a single document.
type headingIDs struct {
	used map[string]bool
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: make(map[string]bool)}
}

// Generate returns a unique anchor for the heading text value.
func (ids *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	var b strings.Builder

	dash := false

	for _, r := range strings.ToLower(string(value)) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
			b.WriteRune(r)

			dash = false
		case unicode.IsSpace(r), r == '-':
			if b.Len() > 0 && !dash {
				b.WriteByte('-')

				dash = true
			}
		}
	}

	id := strings.TrimSuffix(b.String(), "-")
	if id == "" {
		id = "heading"
	}

	return []byte(ids.unique(id))
}

// Put records an explicit anchor.
func (ids *headingIDs) Put(value []byte) {
	ids.used[string(value)] = true
}

func (ids *headingIDs) unique(id string) string {
	if !ids.used[id] {
		ids.used[id] = true

		return id
	}

	for i := 1; ; i++ {
		candidate := id + "-" + strconv.Itoa(i)
		if !ids.used[candidate] {
			ids.used[candidate] = true

			return candidate
		}
	}
}
