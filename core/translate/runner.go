// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/aicoding-caret/caretdocs/core/content"
	"github.com/aicoding-caret/caretdocs/core/locale"
)

const (
	sourceExt = ".mdx"

	translateProgressEvery = 5
	titleProgressEvery     = 10

	todoFileName = "translation-todo.json"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Generator produces text for a prompt. *Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Runner executes translation jobs over a content root holding docs-<locale>
// directories, and writes a JSON summary of every job to LogDir.
type Runner struct {
	Generator Generator
	Root      string
	LogDir    string

	// Delay is the pause between two consecutive model calls.
	Delay time.Duration

	Logger zerolog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRunner returns a Runner with the package logger.
func NewRunner(gen Generator, root, logDir string, delay time.Duration) *Runner {
	return &Runner{
		Generator: gen,
		Root:      root,
		LogDir:    logDir,
		Delay:     delay,
		Logger:    log.With().Str("sys", "translate").Logger(),
		now:       time.Now,
		sleep:     pause,
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TranslationSummary is the result of a Translate run.
type TranslationSummary struct {
	Timestamp         time.Time `json:"timestamp"`
	Language          string    `json:"language"`
	TotalFiles        int       `json:"totalFiles"`
	AlreadyTranslated int       `json:"alreadyTranslated"`
	FilesToTranslate  int       `json:"filesToTranslate"`
	Successful        int       `json:"successful"`
	Failed            int       `json:"failed"`
	TranslatedFiles   []string  `json:"translatedFiles"`
	FailedFiles       []string  `json:"failedFiles"`

	// Path is where the summary was written.
	Path string `json:"-"`
}

// TitleSummary is the result of a FixTitles run.
type TitleSummary struct {
	Timestamp    time.Time `json:"timestamp"`
	Language     string    `json:"language"`
	LanguageCode string    `json:"languageCode"`
	Phase        int       `json:"phase,omitempty"`
	TotalFiles   int       `json:"totalFiles"`
	Successful   int       `json:"successful"`
	Failed       int       `json:"failed"`
	FailedFiles  []string  `json:"failedFiles"`

	Path string `json:"-"`
}

// TodoReport lists, per target, the English pages whose translation is
// missing or whose title shows no sign of having been translated.
type TodoReport struct {
	Timestamp    time.Time                  `json:"timestamp"`
	Untranslated map[locale.Locale][]string `json:"untranslated"`
	Counts       map[string]int             `json:"counts"`

	Path string `json:"-"`
}

// SourceFiles returns the English .mdx files below root, relative to the
// English content directory and slash separated.
func SourceFiles(root string) ([]string, error) {
	base := filepath.Join(root, locale.Default.ContentDir())

	var files []string

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || filepath.Ext(path) != sourceExt {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		files = append(files, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list English documents: %w", err)
	}

	return files, nil
}

func (r *Runner) sourcePath(file string) string {
	return filepath.Join(r.Root, locale.Default.ContentDir(), filepath.FromSlash(file))
}

func (r *Runner) targetPath(t Target, file string) string {
	return filepath.Join(r.Root, t.Dir(), filepath.FromSlash(file))
}

// targetTitle returns the quoted title of the translated file, if both exist.
func (r *Runner) targetTitle(t Target, file string) (string, bool) {
	data, err := os.ReadFile(r.targetPath(t, file))
	if err != nil {
		return "", false
	}

	return content.Title(string(data))
}

// IsTranslated reports whether file has a translation for t whose title
// differs from the English title.
func (r *Runner) IsTranslated(t Target, file string) bool {
	title, ok := r.targetTitle(t, file)
	if !ok {
		return false
	}

	var english string

	if data, err := os.ReadFile(r.sourcePath(file)); err == nil {
		english, _ = content.Title(string(data))
	}

	return title != english
}

// Translate translates every English document that t lacks.
//
// Per-file failures are logged and counted without stopping the run. The
// returned error only reports failures to list the sources, to write the
// summary, or a cancelled ctx.
func (r *Runner) Translate(ctx context.Context, t Target) (*TranslationSummary, error) {
	files, err := SourceFiles(r.Root)
	if err != nil {
		return nil, err
	}

	pending := make([]string, 0, len(files))

	for _, file := range files {
		if !r.IsTranslated(t, file) {
			pending = append(pending, file)
		}
	}

	logger := r.Logger.With().Str("language", t.Name).Logger()
	logger.Info().
		Int("total", len(files)).
		Int("already_translated", len(files)-len(pending)).
		Int("to_translate", len(pending)).
		Msg("Starting translation")

	summary := &TranslationSummary{
		Language:          t.Name,
		TotalFiles:        len(files),
		AlreadyTranslated: len(files) - len(pending),
		FilesToTranslate:  len(pending),
		TranslatedFiles:   []string{},
		FailedFiles:       []string{},
	}

	runErr := r.each(ctx, pending, translateProgressEvery, logger, func(file string) error {
		logger.Info().Str("file", file).Msg("Translating")

		if err := r.translateFile(ctx, t, file); err != nil {
			summary.Failed++
			summary.FailedFiles = append(summary.FailedFiles, file)

			return err
		}

		summary.Successful++
		summary.TranslatedFiles = append(summary.TranslatedFiles, file)

		return nil
	})

	summary.Timestamp = r.now().UTC()

	summary.Path, err = r.writeSummary("translation-"+string(t.Locale), summary)
	if err != nil {
		return summary, err
	}

	logger.Info().
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Str("summary", summary.Path).
		Msg("Translation complete")

	return summary, runErr
}

func (r *Runner) translateFile(ctx context.Context, t Target, file string) error {
	src, err := os.ReadFile(r.sourcePath(file))
	if err != nil {
		return err
	}

	prompt, err := DocumentPrompt(t, string(src))
	if err != nil {
		return err
	}

	translated, err := r.Generator.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	dst := r.targetPath(t, file)
	if err := os.MkdirAll(filepath.Dir(dst), dirPermissions); err != nil {
		return err
	}

	return os.WriteFile(dst, []byte(cleanDocument(translated)), filePermissions)
}

// FixTitles re-translates the titles of translated files whose title lacks
// the characters of t. The strict variant uses a prompt demanding them.
func (r *Runner) FixTitles(ctx context.Context, t Target, strict bool) (*TitleSummary, error) {
	files, err := SourceFiles(r.Root)
	if err != nil {
		return nil, err
	}

	pending := make([]string, 0, len(files))

	for _, file := range files {
		if title, ok := r.targetTitle(t, file); ok && !t.HasNativeChars(title) {
			pending = append(pending, file)
		}
	}

	logger := r.Logger.With().Str("language", t.Name).Bool("strict", strict).Logger()
	logger.Info().Int("files", len(pending)).Msg("Fixing titles")

	summary := &TitleSummary{
		Language:     t.Name,
		LanguageCode: string(t.Locale),
		TotalFiles:   len(pending),
		FailedFiles:  []string{},
	}

	name := "fix-titles-" + string(t.Locale)
	if strict {
		summary.Phase = 2
		name = "fix-titles-phase2-" + string(t.Locale)
	}

	runErr := r.each(ctx, pending, titleProgressEvery, logger, func(file string) error {
		if err := r.fixTitle(ctx, t, file, strict, logger); err != nil {
			summary.Failed++
			summary.FailedFiles = append(summary.FailedFiles, file)

			return err
		}

		summary.Successful++

		return nil
	})

	summary.Timestamp = r.now().UTC()

	summary.Path, err = r.writeSummary(name, summary)
	if err != nil {
		return summary, err
	}

	logger.Info().
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Str("summary", summary.Path).
		Msg("Title fixing complete")

	return summary, runErr
}

func (r *Runner) fixTitle(ctx context.Context, t Target, file string, strict bool, logger zerolog.Logger) error {
	path := r.targetPath(t, file)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	old, ok := content.Title(string(data))
	if !ok {
		return errors.New("no title found")
	}

	prompt, err := TitlePrompt(t, old, strict)
	if err != nil {
		return err
	}

	reply, err := r.Generator.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	title := cleanTitle(reply)
	if title == "" {
		return ErrEmptyResponse
	}

	event := logger.Info()
	if !t.HasNativeChars(title) {
		event = logger.Warn()
	}

	event.Str("file", file).
		Str("old", old).
		Str("new", title).
		Bool("has_native_chars", t.HasNativeChars(title)).
		Msg("Translated title")

	updated, ok := content.ReplaceTitle(string(data), title)
	if !ok {
		return errors.New("title is not in the frontmatter")
	}

	return os.WriteFile(path, []byte(updated), filePermissions)
}

// each runs fn over files sequentially, pausing Delay between calls and
// logging progress every n files and after the last one.
func (r *Runner) each(ctx context.Context, files []string, n int, logger zerolog.Logger, fn func(file string) error) error {
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := fn(file); err != nil {
			logger.Error().Err(err).Str("file", file).Msg("Failed")
		}

		done := i + 1
		if done%n == 0 || done == len(files) {
			logger.Info().
				Int("done", done).
				Int("total", len(files)).
				Str("progress", strconv.FormatFloat(float64(done)*100/float64(len(files)), 'f', 1, 64)+"%").
				Msg("Progress")
		}

		if done < len(files) {
			if err := r.sleep(ctx, r.Delay); err != nil {
				return err
			}
		}
	}

	return nil
}

// Untranslated reports, for every target, the English pages whose
// translation is missing or has a title without the language's characters,
// and writes the report to LogDir.
func (r *Runner) Untranslated(ctx context.Context) (*TodoReport, error) {
	files, err := SourceFiles(r.Root)
	if err != nil {
		return nil, err
	}

	all := Targets()
	lists := make([][]string, len(all))

	g, ctx := errgroup.WithContext(ctx)

	for i, t := range all {
		g.Go(func() error {
			list := []string{}

			for _, file := range files {
				if err := ctx.Err(); err != nil {
					return err
				}

				if title, ok := r.targetTitle(t, file); !ok || !t.HasNativeChars(title) {
					list = append(list, file)
				}
			}

			lists[i] = list

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &TodoReport{
		Timestamp:    r.now().UTC(),
		Untranslated: make(map[locale.Locale][]string, len(all)),
		Counts:       make(map[string]int, len(all)+1),
	}

	total := 0

	for i, t := range all {
		report.Untranslated[t.Locale] = lists[i]
		report.Counts[string(t.Locale)] = len(lists[i])
		total += len(lists[i])

		r.Logger.Info().Str("language", t.Name).Int("files", len(lists[i])).Msg("Untranslated")
	}

	report.Counts["total"] = total

	report.Path, err = r.writeJSON(todoFileName, report)
	if err != nil {
		return report, err
	}

	r.Logger.Info().Int("total", total).Str("report", report.Path).Msg("Saved translation todo")

	return report, nil
}

// writeSummary writes v to <LogDir>/<name>-<unix ms>.json.
func (r *Runner) writeSummary(name string, v any) (string, error) {
	return r.writeJSON(name+"-"+strconv.FormatInt(r.now().UnixMilli(), 10)+".json", v)
}

func (r *Runner) writeJSON(fileName string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", fileName, err)
	}

	if err := os.MkdirAll(r.LogDir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(r.LogDir, fileName)
	if err := os.WriteFile(path, append(data, '\n'), filePermissions); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", fileName, err)
	}

	return path, nil
}
