// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package markdown holds line-level helpers for tools that edit Markdown and
MDX source without parsing it into a tree.
*/
package markdown

import "strings"

// minFenceWidth is the shortest run of backticks or tildes that opens a
// fenced code block.
const minFenceWidth = 3

// Fence tracks fenced code blocks while a document is scanned line by line.
//
// A block opens on a run of at least three backticks or tildes and closes
// only on a run of the same character that is at least as long and carries
// no info string, so "```" inside a "~~~" block, or inside a "````" block,
// is content. The zero value is outside any block.
type Fence struct {
	char  byte
	width int
}

// Open reports whether the scan is inside a fenced block.
func (f *Fence) Open() bool {
	return f.width > 0
}

// Step advances over line and reports whether it belongs to a fenced block,
// counting the opening and closing fence lines as part of the block.
//
// Indentation is ignored so fences nested in list items are recognized.
func (f *Fence) Step(line string) bool {
	char, width, rest := fenceRun(strings.TrimLeft(line, " \t"))

	if !f.Open() {
		if width < minFenceWidth {
			return false
		}

		// A backtick fence's info string may not contain backticks,
		// otherwise the line is inline code.
		if char == '`' && strings.ContainsRune(rest, '`') {
			return false
		}

		f.char, f.width = char, width

		return true
	}

	if char == f.char && width >= f.width && strings.TrimSpace(rest) == "" {
		f.char, f.width = 0, 0
	}

	return true
}

// fenceRun splits the leading run of backticks or tildes off s.
func fenceRun(s string) (byte, int, string) {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0, s
	}

	n := 1
	for n < len(s) && s[n] == s[0] {
		n++
	}

	return s[0], n, s[n:]
}
