// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package translate

import (
	"fmt"
	"strings"
	"text/template"
)

var documentPrompt = template.Must(template.New("document").Parse(
	`You are a professional technical translator. Translate the following MDX documentation from English to {{.Name}}.

IMPORTANT RULES:
1. Keep all technical terms in English: Caret, Cline, Claude, VS Code, MCP, TypeScript, Node.js, npm, git, API, etc.
2. Do NOT translate code blocks, command syntax, or file paths
3. Keep all Markdown structure (headings, lists, links, images) exactly the same
4. Keep YAML frontmatter structure unchanged, only translate title and description fields
5. For links like [text](/en/path), change /en/ to /{{.Code}}/
6. Keep <BrandName /> components exactly as written
7. Translate naturally and idiomatically in {{.Name}}

Text to translate:
` + "```" + `
{{.Text}}
` + "```" + `

Please provide ONLY the translated text, without any explanations or markdown code fences.`))

var titlePrompt = template.Must(template.New("title").Parse(
	`Translate this documentation title to {{.Name}}:
"{{.Text}}"

Rules:
- Keep technical terms (API, CLI, OAuth, Caret, Cline, Claude, VS Code, MCP, TypeScript, Node.js, npm, git, etc.)
- Keep simple/short words in English if they are technical terms (e.g., "Plan", "Act", "Model", "Provider")
- Natural translation for rest
- Return ONLY the translated title, no explanation or quotes
- Do not add markdown formatting`))

var strictTitlePrompt = template.Must(template.New("strict-title").Parse(
	`Translate this documentation title to {{.Name}}:
"{{.Text}}"

CRITICAL RULES:
1. Keep technical terms (API, CLI, OAuth, Caret, Cline, Claude, VS Code, MCP, TypeScript, Node.js, npm, git, etc.) in English
2. Translate the REST naturally and idiomatically in {{.Name}}
3. MUST INCLUDE language-specific characters:
   - {{.Hint}}
4. Examples of properly translated titles with required characters:
   {{.Examples}}

Return ONLY the translated title, no explanation or quotes.`))

type promptData struct {
	Target
	Code string
	Text string
}

func render(tmpl *template.Template, t Target, text string) (string, error) {
	var b strings.Builder

	if err := tmpl.Execute(&b, promptData{Target: t, Code: string(t.Locale), Text: text}); err != nil {
		return "", fmt.Errorf("failed to build %s prompt: %w", tmpl.Name(), err)
	}

	return b.String(), nil
}

// DocumentPrompt asks for a full MDX document to be translated into t.
func DocumentPrompt(t Target, text string) (string, error) {
	return render(documentPrompt, t, text)
}

// TitlePrompt asks for a page title to be translated into t. The strict
// variant insists on language-specific characters and shows examples.
func TitlePrompt(t Target, title string, strict bool) (string, error) {
	if strict {
		return render(strictTitlePrompt, t, title)
	}

	return render(titlePrompt, t, title)
}

// cleanTitle trims whitespace and one pair of surrounding quotes from a model reply.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)

	if s != "" && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}

	if n := len(s); n > 0 && (s[n-1] == '"' || s[n-1] == '\'') {
		s = s[:n-1]
	}

	return s
}

// cleanDocument removes a code fence wrapped around the whole reply.
func cleanDocument(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return s
	}

	nl := strings.IndexByte(trimmed, '\n')
	if nl < 0 {
		return s
	}

	inner := strings.TrimSuffix(trimmed[nl+1:], "```")

	return strings.TrimRight(inner, "\n") + "\n"
}
