// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

const frontMatterDelimiter = "---"

// FrontMatter is the YAML header of a documentation page.
type FrontMatter struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	SidebarLabel    string `yaml:"sidebar_label"`
	SidebarPosition int    `yaml:"sidebar_position"`
	Slug            string `yaml:"slug"`
}

// quotedTitle matches a YAML double-quoted title (with backslash escapes)
// or a single-quoted one (with '' for a quote). The closing quote must match
// the opening one, so apostrophes inside double quotes are kept.
const quotedTitle = `(?:"((?:[^"\\\n]|\\.)*)"|'((?:[^'\n]|'')*)')`

// titlePattern matches a quoted title line anywhere in a file.
var titlePattern = regexp.MustCompile(`(?m)^title:[ \t]*` + quotedTitle)

// frontMatterTitlePattern matches the quoted title line inside a frontmatter block.
var frontMatterTitlePattern = regexp.MustCompile(`(?m)^(title:[ \t]*)` + quotedTitle)

var (
	unescapeDoubleQuoted = strings.NewReplacer(`\\`, `\`, `\"`, `"`)
	escapeDoubleQuoted   = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)

// SplitFrontMatter separates a leading "---" delimited block from the body.
// Without one, ok is false and body is src unchanged.
func SplitFrontMatter(src string) (frontMatter, body string, ok bool) {
	rest, found := strings.CutPrefix(src, frontMatterDelimiter)
	if !found {
		return "", src, false
	}

	// The opening delimiter must be a line of its own.
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 || strings.TrimSpace(rest[:nl]) != "" {
		return "", src, false
	}

	rest = rest[nl+1:]

	for offset := 0; offset <= len(rest); {
		end := strings.IndexByte(rest[offset:], '\n')

		line := rest[offset:]
		if end >= 0 {
			line = rest[offset : offset+end]
		}

		if strings.TrimRight(line, " \t\r") == frontMatterDelimiter {
			if end < 0 {
				return rest[:offset], "", true
			}

			return rest[:offset], rest[offset+end+1:], true
		}

		if end < 0 {
			break
		}

		offset += end + 1
	}

	return "", src, false
}

// ParseFrontMatter decodes the frontmatter of src and returns it with the body.
// Files without frontmatter yield a zero FrontMatter.
func ParseFrontMatter(src string) (FrontMatter, string, error) {
	var fm FrontMatter

	header, body, ok := SplitFrontMatter(src)
	if !ok {
		return fm, src, nil
	}

	if strings.TrimSpace(header) == "" {
		return fm, body, nil
	}

	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, body, fmt.Errorf("invalid frontmatter: %w", err)
	}

	return fm, body, nil
}

// Title returns the quoted title of a file, as the translation tooling
// compares it. Unquoted titles are not recognized.
func Title(src string) (string, bool) {
	m := titlePattern.FindStringSubmatchIndex(src)
	if m == nil {
		return "", false
	}

	if m[2] >= 0 {
		return unescapeDoubleQuoted.Replace(src[m[2]:m[3]]), true
	}

	return strings.ReplaceAll(src[m[4]:m[5]], "''", "'"), true
}

// ReplaceTitle rewrites the quoted frontmatter title of src to title as a
// double-quoted string, escaping backslashes and double quotes. It reports
// whether a title was replaced.
func ReplaceTitle(src, title string) (string, bool) {
	header, body, ok := SplitFrontMatter(src)
	if !ok {
		return src, false
	}

	loc := frontMatterTitlePattern.FindStringSubmatchIndex(header)
	if loc == nil {
		return src, false
	}

	header = header[:loc[3]] + `"` + escapeDoubleQuoted.Replace(title) + `"` + header[loc[1]:]

	return frontMatterDelimiter + "\n" + header + frontMatterDelimiter + "\n" + body, true
}
