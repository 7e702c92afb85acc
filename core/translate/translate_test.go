// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package translate

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicoding-caret/caretdocs/core/locale"
)

// fakeGenerator answers prompts from a function and records them.
type fakeGenerator struct {
	prompts []string
	reply   func(prompt string) (string, error)
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)

	return g.reply(prompt)
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestRunner(t *testing.T, gen Generator) (*Runner, *[]time.Duration) {
	t.Helper()

	root := t.TempDir()

	var sleeps []time.Duration

	r := NewRunner(gen, root, filepath.Join(root, "work-logs"), 500*time.Millisecond)
	r.Logger = zerolog.Nop()
	r.now = func() time.Time { return fixedNow }
	r.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)

		return nil
	}

	return r, &sleeps
}

func TestLookupTarget(t *testing.T) {
	t.Parallel()

	target, err := LookupTarget("FR")
	require.NoError(t, err)
	assert.Equal(t, "French", target.Name)
	assert.Equal(t, "docs-fr", target.Dir())

	for _, code := range []string{"ko", "en", "es", ""} {
		_, err := LookupTarget(code)
		assert.ErrorIs(t, err, ErrUnknownTarget, code)
	}

	assert.Len(t, Targets(), 3)
}

func TestHasNativeChars(t *testing.T) {
	t.Parallel()

	fr, _ := LookupTarget("fr")
	de, _ := LookupTarget("de")
	ru, _ := LookupTarget("ru")

	assert.True(t, fr.HasNativeChars("Sélection du modèle"))
	assert.False(t, fr.HasNativeChars("Installation"))
	assert.True(t, de.HasNativeChars("Einführung"))
	assert.False(t, de.HasNativeChars("Modell"))
	assert.True(t, ru.HasNativeChars("Установка"))
	assert.False(t, ru.HasNativeChars("Setup"))
}

func TestPrompts(t *testing.T) {
	t.Parallel()

	de, _ := LookupTarget("de")

	doc, err := DocumentPrompt(de, "# Hello {{.Name}}")
	require.NoError(t, err)
	assert.Contains(t, doc, "from English to German")
	assert.Contains(t, doc, "change /en/ to /de/")
	assert.Contains(t, doc, "# Hello {{.Name}}")

	title, err := TitlePrompt(de, "Model Selection", false)
	require.NoError(t, err)
	assert.Contains(t, title, `"Model Selection"`)
	assert.NotContains(t, title, "umlauts")

	strict, err := TitlePrompt(de, "Model Selection", true)
	require.NoError(t, err)
	assert.Contains(t, strict, "German umlauts: ä, ö, ü, ß")
	assert.Contains(t, strict, "Einrichtung, Modell")
}

func TestPromptTemplateError(t *testing.T) {
	t.Parallel()

	de, _ := LookupTarget("de")
	broken := template.Must(template.New("broken").Parse("{{.Unknown}}"))

	_, err := render(broken, de, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build broken prompt")
}

func TestCleanReplies(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Modèle", cleanTitle(` "Modèle" `))
	assert.Equal(t, "Modèle", cleanTitle(`'Modèle'`))
	assert.Equal(t, "Mode Plan", cleanTitle("Mode Plan\n"))
	assert.Empty(t, cleanTitle(`""`))

	assert.Equal(t, "---\ntitle: x\n---\n", cleanDocument("```mdx\n---\ntitle: x\n---\n```"))
	assert.Equal(t, "---\ntitle: x\n---\n", cleanDocument("---\ntitle: x\n---\n"))
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: func(prompt string) (string, error) {
		if strings.Contains(prompt, "broken") {
			return "", errors.New("upstream failure")
		}

		return "---\ntitle: \"Traduit\"\n---\nBonjour\n", nil
	}}

	r, sleeps := newTestRunner(t, gen)
	en := filepath.Join(r.Root, "docs-en")
	fr := filepath.Join(r.Root, "docs-fr")

	writeFile(t, filepath.Join(en, "a.mdx"), "---\ntitle: \"Alpha\"\n---\nA\n")
	writeFile(t, filepath.Join(en, "guide/b.mdx"), "---\ntitle: \"Beta\"\n---\nbroken\n")
	writeFile(t, filepath.Join(en, "guide/c.mdx"), "---\ntitle: \"Gamma\"\n---\nC\n")
	writeFile(t, filepath.Join(en, "done.mdx"), "---\ntitle: \"Done\"\n---\n")
	writeFile(t, filepath.Join(en, "skip.md"), "---\ntitle: \"Markdown\"\n---\n")
	// Same title as English: a copy, not a translation.
	writeFile(t, filepath.Join(fr, "a.mdx"), "---\ntitle: \"Alpha\"\n---\nA\n")
	writeFile(t, filepath.Join(fr, "done.mdx"), "---\ntitle: \"Terminé\"\n---\n")

	target, err := LookupTarget("fr")
	require.NoError(t, err)

	summary, err := r.Translate(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalFiles)
	assert.Equal(t, 1, summary.AlreadyTranslated)
	assert.Equal(t, 3, summary.FilesToTranslate)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, []string{"a.mdx", "guide/c.mdx"}, summary.TranslatedFiles)
	assert.Equal(t, []string{"guide/b.mdx"}, summary.FailedFiles)

	// One pause between each pair of consecutive calls.
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, *sleeps)
	assert.Len(t, gen.prompts, 3)

	assert.Equal(t, "---\ntitle: \"Traduit\"\n---\nBonjour\n", readFile(t, filepath.Join(fr, "guide/c.mdx")))
	assert.NoFileExists(t, filepath.Join(fr, "guide/b.mdx"))

	wantPath := filepath.Join(r.LogDir, "translation-fr-1740830400000.json")
	assert.Equal(t, wantPath, summary.Path)

	var written map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, wantPath)), &written))
	assert.Equal(t, "French", written["language"])
	assert.InDelta(t, 4, written["totalFiles"], 0)
	assert.InDelta(t, 1, written["failed"], 0)
	assert.Equal(t, "2025-03-01T12:00:00Z", written["timestamp"])
}

func TestTranslateCancelled(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: func(string) (string, error) { return "x", nil }}
	r, _ := newTestRunner(t, gen)
	writeFile(t, filepath.Join(r.Root, "docs-en", "a.mdx"), "A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target, _ := LookupTarget("ru")

	summary, err := r.Translate(ctx, target)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, gen.prompts)
	assert.FileExists(t, summary.Path)
}

func TestTranslateMissingSources(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t, &fakeGenerator{})
	target, _ := LookupTarget("de")

	_, err := r.Translate(context.Background(), target)
	assert.Error(t, err)
}

func TestFixTitles(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, `"Model Selection"`):
			return `"Sélection du "modèle""`, nil
		case strings.Contains(prompt, `"Plan Mode"`):
			return "Mode Plan", nil
		default:
			return "", errors.New("unexpected prompt")
		}
	}}

	r, _ := newTestRunner(t, gen)
	en := filepath.Join(r.Root, "docs-en")
	fr := filepath.Join(r.Root, "docs-fr")

	for _, name := range []string{"model.mdx", "plan.mdx", "ok.mdx", "elided.mdx", "missing.mdx"} {
		writeFile(t, filepath.Join(en, name), "---\ntitle: \"x\"\n---\n")
	}

	writeFile(t, filepath.Join(fr, "model.mdx"), "---\ntitle: \"Model Selection\"\nsidebar_position: 1\n---\nCorps\n")
	writeFile(t, filepath.Join(fr, "plan.mdx"), "---\ntitle: 'Plan Mode'\n---\n")
	writeFile(t, filepath.Join(fr, "ok.mdx"), "---\ntitle: \"Déjà traduit\"\n---\n")
	writeFile(t, filepath.Join(fr, "elided.mdx"), "---\ntitle: \"Installer l'éditeur\"\n---\n")

	target, _ := LookupTarget("fr")

	summary, err := r.FixTitles(context.Background(), target, true)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Phase)
	assert.Equal(t, "fr", summary.LanguageCode)
	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, filepath.Join(r.LogDir, "fix-titles-phase2-fr-1740830400000.json"), summary.Path)

	assert.Equal(t,
		"---\ntitle: \"Sélection du \\\"modèle\\\"\"\nsidebar_position: 1\n---\nCorps\n",
		readFile(t, filepath.Join(fr, "model.mdx")))
	// Written even though it still lacks accents.
	assert.Equal(t, "---\ntitle: \"Mode Plan\"\n---\n", readFile(t, filepath.Join(fr, "plan.mdx")))

	for _, prompt := range gen.prompts {
		assert.Contains(t, prompt, "MUST INCLUDE")
	}
}

func TestFixTitlesPhaseOneSummary(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: func(string) (string, error) { return "", errors.New("down") }}
	r, _ := newTestRunner(t, gen)

	writeFile(t, filepath.Join(r.Root, "docs-en", "a.mdx"), "---\ntitle: \"A\"\n---\n")
	writeFile(t, filepath.Join(r.Root, "docs-ru", "a.mdx"), "---\ntitle: \"A\"\n---\n")

	target, _ := LookupTarget("ru")

	summary, err := r.FixTitles(context.Background(), target, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, []string{"a.mdx"}, summary.FailedFiles)
	assert.Equal(t, filepath.Join(r.LogDir, "fix-titles-ru-1740830400000.json"), summary.Path)

	raw := readFile(t, summary.Path)
	assert.NotContains(t, raw, `"phase"`)
	assert.Contains(t, raw, `"languageCode": "ru"`)
}

func TestUntranslated(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t, nil)
	en := filepath.Join(r.Root, "docs-en")

	writeFile(t, filepath.Join(en, "a.mdx"), "---\ntitle: \"Install\"\n---\n")
	writeFile(t, filepath.Join(en, "b.mdx"), "---\ntitle: \"Models\"\n---\n")
	writeFile(t, filepath.Join(r.Root, "docs-fr", "a.mdx"), "---\ntitle: \"Installer l'éditeur\"\n---\n")
	writeFile(t, filepath.Join(r.Root, "docs-fr", "b.mdx"), "---\ntitle: \"Models\"\n---\n")
	writeFile(t, filepath.Join(r.Root, "docs-ru", "a.mdx"), "---\ntitle: \"Установка\"\n---\n")
	writeFile(t, filepath.Join(r.Root, "docs-ru", "b.mdx"), "---\ntitle: \"Модели\"\n---\n")

	report, err := r.Untranslated(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"b.mdx"}, report.Untranslated[locale.FR])
	assert.Equal(t, []string{"a.mdx", "b.mdx"}, report.Untranslated[locale.DE])
	assert.Equal(t, []string{}, report.Untranslated[locale.RU])
	assert.Equal(t, map[string]int{"fr": 1, "de": 2, "ru": 0, "total": 3}, report.Counts)
	assert.Equal(t, filepath.Join(r.LogDir, "translation-todo.json"), report.Path)
	assert.FileExists(t, report.Path)
}
