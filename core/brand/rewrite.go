// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package brand

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/aicoding-caret/caretdocs/core/markdown"
	"github.com/aicoding-caret/caretdocs/core/particle"
)

// contextWindow is how many bytes around a match are inspected by skipMatch.
const contextWindow = 100

type replacement struct {
	pattern string
	with    string
}

// Component renders the MDX component that prints the brand name for role.
func Component(role particle.Role) string {
	if role == "" {
		return "<BrandName />"
	}

	return `<BrandName particle="` + string(role) + `" />`
}

// koreanReplacements lists every Korean brand mention with a particle, longest
// first per brand, followed by the bare names.
var koreanReplacements = func() []replacement {
	var out []replacement

	for _, b := range []Brand{brands[Careti], brands[Caret]} {
		withParticle := make([]replacement, 0, len(particle.Roles()))
		for _, role := range particle.Roles() {
			withParticle = append(withParticle, replacement{
				pattern: b.NameKo + particle.Select(role, b.HasFinalConsonant),
				with:    Component(role),
			})
		}

		slices.SortStableFunc(withParticle, func(a, b replacement) int {
			return cmp.Compare(len(b.pattern), len(a.pattern))
		})

		out = append(out, withParticle...)
	}

	return append(out,
		replacement{pattern: brands[Careti].NameKo, with: Component("")},
		replacement{pattern: brands[Caret].NameKo, with: Component("")},
	)
}()

var otherReplacements = []replacement{
	{pattern: brands[Careti].Name, with: Component("")},
	{pattern: brands[Caret].Name, with: Component("")},
}

var (
	reBeforePath      = regexp.MustCompile(`/[a-z-]*$`)
	reAfterPath       = regexp.MustCompile(`^[a-z-]*/`)
	reLinkTarget      = regexp.MustCompile(`\]\([^)]*$`)
	reImageAlt        = regexp.MustCompile(`!\[[^\]]*$`)
	reSrcAttr         = regexp.MustCompile(`src\s*=\s*["'][^"']*$`)
	reAttr            = regexp.MustCompile(`\w+\s*=\s*["'][^"']*$`)
	reAfterComponent  = regexp.MustCompile(`<BrandName[^>]*>\s*$`)
	reGitHub          = regexp.MustCompile(`github\.com\S*$`)
	reDomainBefore    = regexp.MustCompile(`\.(ai|team)\s*$`)
	reDomainAfter     = regexp.MustCompile(`(?i)^[a-z]*\.(ai|team)\b`)
	reBadge           = regexp.MustCompile(`shields\.io|badge`)
	repoName          = "aicoding-caret"
	frontMatterMarker = "---"
)

// Rewrite replaces literal brand mentions in MDX content with BrandName
// components so that the rendered name follows the serving brand.
//
// With korean set, Korean names with particles are replaced (longest match
// first); otherwise the English names are. Frontmatter, fenced code blocks,
// URLs, link targets, attribute values, badges and domain names are left
// alone. It returns the rewritten content and the number of replacements.
func Rewrite(content string, korean bool) (string, int) {
	table := otherReplacements
	if korean {
		table = koreanReplacements
	}

	lines := strings.Split(content, "\n")
	inFrontMatter := len(lines) > 0 && strings.TrimSpace(lines[0]) == frontMatterMarker
	total := 0

	var fence markdown.Fence

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inFrontMatter {
			if i > 0 && trimmed == frontMatterMarker {
				inFrontMatter = false
			}

			continue
		}

		if fence.Step(line) {
			continue
		}

		for _, r := range table {
			var n int

			line, n = replaceLine(line, r)
			total += n
		}

		lines[i] = line
	}

	return strings.Join(lines, "\n"), total
}

func replaceLine(line string, r replacement) (string, int) {
	count := 0
	from := 0

	for {
		idx := strings.Index(line[from:], r.pattern)
		if idx < 0 {
			return line, count
		}

		idx += from

		if skipMatch(line, idx, r.pattern) {
			from = idx + len(r.pattern)

			continue
		}

		line = line[:idx] + r.with + line[idx+len(r.pattern):]
		from = idx + len(r.with)
		count++
	}
}

// skipMatch reports whether the match of pattern at index is part of a URL,
// link, attribute, component or domain and must not be rewritten.
func skipMatch(line string, index int, pattern string) bool {
	before := line[runeFloor(line, index-contextWindow):index]
	afterStart := index + len(pattern)
	after := line[afterStart:runeCeil(line, afterStart+contextWindow)]

	switch {
	case reBeforePath.MatchString(before), reAfterPath.MatchString(after):
		return true
	case reLinkTarget.MatchString(before):
		return true
	case reImageAlt.MatchString(before), reSrcAttr.MatchString(before):
		return true
	case reAttr.MatchString(before):
		return true
	case reAfterComponent.MatchString(before):
		return true
	case reGitHub.MatchString(before):
		return true
	case strings.Contains(before+pattern+truncate(after, 20), repoName):
		return true
	case reDomainBefore.MatchString(before+pattern), reDomainAfter.MatchString(pattern+after):
		return true
	case reBadge.MatchString(before):
		return true
	}

	return false
}

// runeFloor clamps i into s and moves it back to a rune boundary.
func runeFloor(s string, i int) int {
	if i <= 0 {
		return 0
	}

	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}

	return i
}

// runeCeil clamps i into s and moves it forward to a rune boundary.
func runeCeil(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}

	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}

	return i
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:runeCeil(s, n)]
}
