// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command ogimage converts images into 1200×630 WebP social cards.
//
// Usage:
//
//	ogimage <input> <output>
//	ogimage --batch <directory>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/aicoding-caret/caretdocs/core/audit"
	"github.com/aicoding-caret/caretdocs/core/ogimage"
)

var errUsage = errors.New("usage: ogimage <input> <output> | ogimage --batch <directory>")

func main() {
	audit.SetDefaultLogger()

	batch := flag.String("batch", "", "convert every image in `directory`")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), errUsage)
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, *batch, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
		}

		stop()
		log.Fatal().Err(err).Msg("Conversion failed")
	}
}

func run(ctx context.Context, out io.Writer, batch string, args []string) error {
	if batch != "" {
		if len(args) != 0 {
			return errUsage
		}

		result, err := ogimage.Batch(ctx, batch)
		if err != nil {
			return err
		}

		for _, res := range result.Results {
			printConverted(out, res)
		}

		fmt.Fprintln(out, result)

		return nil
	}

	if len(args) != 2 {
		return errUsage
	}

	res, err := ogimage.Convert(args[0], args[1])
	if err != nil {
		return err
	}

	printConverted(out, res)

	return nil
}

func printConverted(out io.Writer, res ogimage.Result) {
	fmt.Fprintf(out, "✓ Converted: %s (%dKB)\n", filepath.Base(res.Output), res.Size/1024)
}
