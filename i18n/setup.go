// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// poDomain is the gettext domain every catalogue is registered under.
const poDomain = "caretdocs"

// poDir holds po/<locale>.po files next to the caretdocs.pot template.
const poDir = "po"

var (
	// localesByTag maps a canonical tag such as "ko" to its catalogue.
	localesByTag map[string]*gotext.Locale

	// supportedTags is in matcher order with baseTag first.
	supportedTags []language.Tag

	matcher language.Matcher
)

// Setup loads every po/<locale>.po catalogue in fsys and rebuilds the
// matcher used to pick one per request.
//
// File names may use hyphens or underscores ("zh_Hans.po", "zh-Hans.po").
// Files whose name is not a language tag are skipped with a warning. English
// needs no catalogue: msgids are the English text, so it is always
// supported and is what unmatched tags fall back to.
//
// Calling Setup again replaces the previous state.
func Setup(fsys fs.FS) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	entries, err := fs.ReadDir(fsys, poDir)
	if err != nil {
		return fmt.Errorf("failed to read po directory: %w", err)
	}

	loaded := make(map[string]*gotext.Locale)

	var tags []language.Tag

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".po" {
			continue
		}

		tag, err := language.Parse(strings.ReplaceAll(strings.TrimSuffix(name, ".po"), "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", name).Msg("Skipping catalogue with invalid locale name")

			continue
		}

		loaded[tag.String()] = loadCatalogue(fsys, path.Join(poDir, name), tag)

		if tag != baseTag {
			tags = append(tags, tag)
		}

		Logger.Debug().Str("locale", tag.String()).Str("file", name).Msg("Loaded catalogue")
	}

	slices.SortFunc(tags, func(a, b language.Tag) int {
		return strings.Compare(a.String(), b.String())
	})

	localesByTag = loaded
	supportedTags = append([]language.Tag{baseTag}, tags...)
	matcher = language.NewMatcher(supportedTags)

	Logger.Info().Int("count", len(loaded)).Msg("Loaded catalogues")

	return nil
}

func loadCatalogue(fsys fs.FS, file string, tag language.Tag) *gotext.Locale {
	po := gotext.NewPoFS(fsys)
	po.ParseFile(file)

	// The base path is unused once a translator is added by hand.
	loc := gotext.NewLocale("", tag.String())
	loc.AddTranslator(poDomain, po)

	return loc
}
