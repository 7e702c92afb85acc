// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package ogimage converts images into the 1200×630 WebP social cards linked
from the og:image and twitter:image tags.
*/
package ogimage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Social card geometry and encoder quality.
const (
	Width   = 1200
	Height  = 630
	Quality = 85
)

const outputExt = ".webp"

// ErrUnsupportedFormat is returned for inputs that are not a supported image type.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var inputExts = []string{".jpg", ".jpeg", ".png", ".gif", ".tiff", ".bmp"}

// Supported reports whether path has a convertible image extension.
func Supported(path string) bool {
	return slices.Contains(inputExts, strings.ToLower(filepath.Ext(path)))
}

// Result describes one converted image.
type Result struct {
	Input  string
	Output string
	Size   int64 // bytes written
}

// Convert scales input to cover Width×Height, crops the overflow around
// the center and writes it to output as WebP.
func Convert(input, output string) (Result, error) {
	if !Supported(input) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(input))
	}

	src, err := imaging.Open(input)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode %s: %w", input, err)
	}

	card := imaging.Fill(src, Width, Height, imaging.Center, imaging.Lanczos)

	f, err := os.Create(output)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create %s: %w", output, err)
	}

	if err := webp.Encode(f, card, &webp.Options{Quality: Quality}); err != nil {
		_ = f.Close()
		_ = os.Remove(output)

		return Result{}, fmt.Errorf("failed to encode %s: %w", output, err)
	}

	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", output, err)
	}

	info, err := os.Stat(output)
	if err != nil {
		return Result{}, err
	}

	return Result{Input: input, Output: output, Size: info.Size()}, nil
}

// BatchResult counts the outcome of a Batch run.
type BatchResult struct {
	Converted int
	Failed    int
	Results   []Result
}

func (r BatchResult) String() string {
	return fmt.Sprintf("Batch complete: %d converted, %d failed", r.Converted, r.Failed)
}

// Batch converts every supported image directly inside dir to a WebP file
// of the same name. Existing WebP files, subdirectories and other files are
// skipped. A failed image is logged and counted; only a failure to read dir
// or a cancelled ctx is returned as an error.
//
// Inputs that share a base name ("hero.png", "hero.jpg") would write the
// same output. The first in name order is converted and the rest count as
// failures.
func Batch(ctx context.Context, dir string) (BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var (
		mu     sync.Mutex
		result BatchResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	// output path to the input that claimed it
	claimed := make(map[string]string)

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !Supported(name) {
			continue
		}

		input := filepath.Join(dir, name)
		output := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+outputExt)

		if first, ok := claimed[output]; ok {
			log.Error().
				Str("file", input).
				Str("output", output).
				Str("converted_from", first).
				Msg("Skipping image, output name already used")

			mu.Lock()
			result.Failed++
			mu.Unlock()

			continue
		}

		claimed[output] = input

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := Convert(input, output)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.Error().Err(err).Str("file", input).Msg("Failed to convert image")

				result.Failed++

				return nil
			}

			log.Info().
				Str("file", filepath.Base(output)).
				Int64("kb", res.Size/1024).
				Msg("Converted image")

			result.Converted++
			result.Results = append(result.Results, res)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	slices.SortFunc(result.Results, func(a, b Result) int { return strings.Compare(a.Output, b.Output) })

	return result, nil
}
