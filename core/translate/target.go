// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package translate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/aicoding-caret/caretdocs/core/locale"
)

// ErrUnknownTarget is returned for a language that has no machine translation target.
var ErrUnknownTarget = errors.New("invalid language, use one of: fr, de, ru")

// Target is a language the docs are machine translated into.
type Target struct {
	Locale locale.Locale
	Name   string // English name, as used in prompts and summaries

	// nativeChars matches characters only a real translation would contain.
	nativeChars *regexp.Regexp

	// Hint names the characters a translated title must contain.
	Hint string

	// Examples are correctly translated sample titles.
	Examples string
}

var targets = []Target{
	{
		Locale:      locale.FR,
		Name:        "French",
		nativeChars: regexp.MustCompile(`[àâäêéèëîïôöûüçœæÀÂÄÊÉÈËÎÏÔÖÛÜÇŒÆ]`),
		Hint:        "French accents: à, â, é, è, ê, ë, ç, ô, ù, û, ü, œ, æ",
		Examples:    "Installation, Modèle, Fonction, Développement, Gestion, Intégration, Exécution, Authentification",
	},
	{
		Locale:      locale.DE,
		Name:        "German",
		nativeChars: regexp.MustCompile(`[äöüßÄÖÜ]`),
		Hint:        "German umlauts: ä, ö, ü, ß",
		Examples:    "Einrichtung, Modell, Funktion, Entwicklung, Verwaltung, Integration, Ausführung, Authentifizierung",
	},
	{
		Locale:      locale.RU,
		Name:        "Russian",
		nativeChars: regexp.MustCompile(`[А-Яа-яЁё]`),
		Hint:        "Cyrillic characters: А-Яа-яЁё",
		Examples:    "Установка, Модель, Функция, Разработка, Управление, Интеграция, Исполнение, Аутентификация",
	},
}

// Targets returns every translation target in fr, de, ru order.
func Targets() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)

	return out
}

// LookupTarget returns the target for a language code.
func LookupTarget(code string) (Target, error) {
	if l, ok := locale.Parse(code); ok {
		for _, t := range targets {
			if t.Locale == l {
				return t, nil
			}
		}
	}

	return Target{}, fmt.Errorf("%w: %q", ErrUnknownTarget, code)
}

// HasNativeChars reports whether s contains characters specific to the language.
func (t Target) HasNativeChars(s string) bool {
	return t.nativeChars.MatchString(s)
}

// Dir returns the content directory of the target.
func (t Target) Dir() string {
	return t.Locale.ContentDir()
}
