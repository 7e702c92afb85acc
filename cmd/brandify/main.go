// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command brandify replaces hard-coded brand names in MDX content with
// BrandName components, so pages render the name of the serving brand.
//
// Usage:
//
//	brandify [-n] <directory> [ko]
//
// Pass "ko" for Korean content, where names are matched with their particles.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aicoding-caret/caretdocs/core/audit"
	"github.com/aicoding-caret/caretdocs/core/brand"
)

var errUsage = errors.New("usage: brandify [-n] <directory> [ko]")

func main() {
	audit.SetDefaultLogger()

	dryRun := flag.Bool("n", false, "report the files that would change without writing them")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), errUsage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 || len(args) > 2 || (len(args) == 2 && args[1] != "ko") {
		flag.Usage()
		os.Exit(2)
	}

	korean := len(args) == 2

	fmt.Printf("Processing %s (Korean: %t)\n", args[0], korean)

	updated, err := rewriteDir(os.Stdout, args[0], korean, *dryRun)
	if err != nil {
		log.Fatal().Err(err).Str("dir", args[0]).Msg("Failed to rewrite brand names")
	}

	fmt.Printf("\nTotal files updated: %d\n", updated)
}

// rewriteDir rewrites every .mdx file below dir and returns how many changed.
func rewriteDir(out io.Writer, dir string, korean, dryRun bool) (int, error) {
	updated := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ".mdx") {
			return nil
		}

		changed, err := rewriteFile(path, korean, dryRun)
		if err != nil {
			return err
		}

		if changed {
			fmt.Fprintf(out, "Updated: %s\n", path)

			updated++
		}

		return nil
	})

	return updated, err
}

func rewriteFile(path string, korean, dryRun bool) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	rewritten, n := brand.Rewrite(string(data), korean)
	if n == 0 || rewritten == string(data) {
		return false, nil
	}

	log.Debug().Str("file", path).Int("replacements", n).Msg("Rewrote brand names")

	if dryRun {
		return true, nil
	}

	if err := os.WriteFile(path, []byte(rewritten), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return true, nil
}
