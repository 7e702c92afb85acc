// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command i18n_extract collects the translatable strings of the module into
// a gettext template.
//
// Run it from the module root:
//
//	go run ./cmd/i18n_extract -o po/caretdocs.pot
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/audit"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

func main() {
	audit.SetDefaultLogger()

	outPath := flag.String("o", "po/caretdocs.pot", "output file")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get working directory")
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax}, "./...")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal().Msg("Packages contain errors")
	}

	catalog := newCatalog(moduleRoot(wd))

	for _, pkg := range pkgs {
		catalog.scan(pkg)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), dirPermissions); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to create output directory")
	}

	pot := catalog.pot(config.BuildVersion)
	if err := os.WriteFile(*outPath, []byte(pot), filePermissions); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write template")
	}

	log.Info().Str("path", *outPath).Int("messages", len(catalog.refs)).Msg("Wrote template")
}

// moduleRoot returns the nearest directory above start holding a go.mod,
// or start itself.
func moduleRoot(start string) string {
	for dir := filepath.Clean(start); ; {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}

		dir = parent
	}
}
