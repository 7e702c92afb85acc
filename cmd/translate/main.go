// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command translate machine translates the English documentation.
//
// Usage:
//
//	translate [-config file] translate <fr|de|ru>
//	translate [-config file] fixtitles [--phase2] <fr|de|ru>
//	translate [-config file] untranslated
//
// The Gemini API key is read from GEMINI_TOKEN or GEMINI_API_KEY.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/audit"
	"github.com/aicoding-caret/caretdocs/core/translate"
)

var errUsage = errors.New("usage: translate <translate|fixtitles|untranslated> [language]")

func main() {
	audit.SetDefaultLogger()

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), errUsage)
		flag.PrintDefaults()
	}

	if err := config.Global.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, translate.ErrUnknownTarget) {
			flag.Usage()
		}

		stop()
		log.Fatal().Err(err).Msg("Translation job failed")
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg := config.Global.Translator

	switch args[0] {
	case "untranslated":
		_, err := translate.NewRunner(nil, config.Global.Site.ContentDir, cfg.LogDir, cfg.Delay).Untranslated(ctx)

		return err

	case "translate":
		if len(args) != 2 {
			return errUsage
		}

		target, err := translate.LookupTarget(args[1])
		if err != nil {
			return err
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		_, err = runner.Translate(ctx, target)

		return err

	case "fixtitles":
		flags := flag.NewFlagSet("fixtitles", flag.ContinueOnError)
		phase2 := flags.Bool("phase2", false, "use the strict prompt that demands language-specific characters")

		if err := flags.Parse(args[1:]); err != nil {
			return err
		}

		// Flags may also follow the language.
		code := flags.Arg(0)
		if err := flags.Parse(flags.Args()[min(1, flags.NArg()):]); err != nil {
			return err
		}

		if code == "" || flags.NArg() != 0 {
			return errUsage
		}

		target, err := translate.LookupTarget(code)
		if err != nil {
			return err
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		_, err = runner.FixTitles(ctx, target, *phase2)

		return err

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

// newRunner returns a Runner backed by the Gemini client.
func newRunner() (*translate.Runner, error) {
	cfg := config.Global.Translator

	client, err := translate.NewClient(translate.ClientOptions{
		APIKeys:       cfg.APIKeys,
		Endpoint:      cfg.Endpoint,
		Model:         cfg.Model,
		Timeout:       cfg.Timeout,
		LoadBalancing: cfg.LoadBalancing,
		BaseTimeout:   cfg.BaseTimeout,
		MaxBackoff:    cfg.MaxBackoff,
	})
	if err != nil {
		return nil, err
	}

	return translate.NewRunner(client, config.Global.Site.ContentDir, cfg.LogDir, cfg.Delay), nil
}
