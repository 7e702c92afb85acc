// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"html"
	"regexp"
	"strings"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/markdown"
	"github.com/aicoding-caret/caretdocs/core/particle"
)

var (
	// MDX ESM statements. Prose that merely starts with "import" or
	// "export" has no module specifier or declaration keyword.
	reModuleLine = regexp.MustCompile(
		`^(?:import\s+(?:[\w*{}\s,]+\s+from\s+)?["'][^"']+["'];?|export\s+(?:const|let|var|function|default|\{).*)\s*$`)

	reBrandName       = regexp.MustCompile(`<BrandName(?:\s+particle\s*=\s*["']([A-Za-z]+)["'])?\s*/>`)
	reAdmonitionOpen  = regexp.MustCompile(`^:::(note|tip|info|warning|caution|danger)(?:\s+(.+))?$`)
	reComponentOpen   = regexp.MustCompile(`^<(Note|Tip|Info|Warning|Card|Steps|Step|Columns|Column|Accordion|AccordionGroup)(\s[^>]*)?>$`)
	reComponentClose  = regexp.MustCompile(`^</(Note|Tip|Info|Warning|Card|Steps|Step|Columns|Column|Accordion|AccordionGroup)>$`)
	reTitleAttribute  = regexp.MustCompile(`title\s*=\s*["']([^"']*)["']`)
	admonitionClosing = ":::"
)

// ExpandBrandNames replaces every BrandName component in src with the name
// of b as written in l, followed by the requested Korean particle.
// Unknown particle roles render the bare name.
func ExpandBrandNames(src string, b brand.Brand, l locale.Locale) string {
	return reBrandName.ReplaceAllStringFunc(src, func(m string) string {
		sub := reBrandName.FindStringSubmatch(m)

		role, ok := particle.ParseRole(sub[1])
		if !ok {
			role = ""
		}

		return b.Mention(l, role)
	})
}

// preprocess turns an MDX body into plain Markdown with embedded HTML.
//
// Module lines are dropped, brand names are expanded and the handful of
// layout components used by the docs (admonitions, cards, steps, columns,
// accordions) become HTML blocks. Fenced code is copied verbatim.
func preprocess(body string, b brand.Brand, l locale.Locale) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))

	var fence markdown.Fence

	for _, line := range lines {
		if fence.Step(line) {
			out = append(out, line)

			continue
		}

		trimmed := strings.TrimSpace(line)

		if reModuleLine.MatchString(line) {
			continue
		}

		if block, ok := layoutBlock(trimmed); ok {
			// Blank lines let the Markdown between tags render as Markdown.
			out = append(out, "", block, "")

			continue
		}

		out = append(out, ExpandBrandNames(line, b, l))
	}

	return strings.Join(out, "\n")
}

// layoutBlock maps a layout component line to its HTML.
func layoutBlock(line string) (string, bool) {
	if line == admonitionClosing {
		return "</div></div>", true
	}

	if m := reAdmonitionOpen.FindStringSubmatch(line); m != nil {
		return admonition(m[1], m[2]), true
	}

	if m := reComponentClose.FindStringSubmatch(line); m != nil {
		switch m[1] {
		case "Note", "Tip", "Info", "Warning", "Card":
			return "</div></div>", true
		case "Accordion":
			return "</div></details>", true
		default:
			return "</div>", true
		}
	}

	m := reComponentOpen.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	var title string
	if t := reTitleAttribute.FindStringSubmatch(m[2]); t != nil {
		title = html.EscapeString(t[1])
	}

	switch m[1] {
	case "Note", "Tip", "Info", "Warning":
		return admonition(strings.ToLower(m[1]), ""), true
	case "Card":
		if title == "" {
			return `<div class="card"><div class="card__body">`, true
		}

		return `<div class="card"><div class="card__header"><h3>` + title + `</h3></div><div class="card__body">`, true
	case "Steps":
		return `<div class="steps-container">`, true
	case "Step":
		if title == "" {
			return `<div class="step">`, true
		}

		return `<div class="step"><h4>` + title + `</h4>`, true
	case "Columns":
		return `<div class="row">`, true
	case "Column":
		return `<div class="col">`, true
	case "Accordion":
		return `<details class="details"><summary>` + title + `</summary><div class="details__content">`, true
	default:
		return `<div class="accordion-group">`, true
	}
}

func admonition(kind, title string) string {
	if title == "" {
		title = strings.ToUpper(kind[:1]) + kind[1:]
	}

	return `<div class="admonition admonition-` + kind + `"><div class="admonition-heading"><h5>` +
		html.EscapeString(title) + `</h5></div><div class="admonition-content">`
}
