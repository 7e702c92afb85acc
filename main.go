// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
caretdocs serves the Caret and Careti product documentation in every
supported locale.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/audit"
	"github.com/aicoding-caret/caretdocs/core/content"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/lrucache"
	"github.com/aicoding-caret/caretdocs/i18n"
	"github.com/aicoding-caret/caretdocs/server/assets"
	"github.com/aicoding-caret/caretdocs/server/router"
	"github.com/aicoding-caret/caretdocs/server/routes"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	writeTimeout      time.Duration = 10 * time.Second
	idleTimeout       time.Duration = 30 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second
)

// embeddedContent holds our static web server content.
//
//go:embed assets/css assets/img
//go:embed all:po
var embeddedContent embed.FS

// init assigns the embedded filesystem to the exported assets.FS variable.
//
//nolint:gochecknoinits // this is a good use of init()
func init() {
	assets.FS = embeddedContent
}

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	config.Global.Print()

	if err := i18n.Setup(assets.FS); err != nil {
		return fmt.Errorf("failed to initialize i18n engine: %w", err)
	}

	log.Info().Msg("Initialized i18n engine")

	docs, err := newDocs()
	if err != nil {
		return err
	}

	router := router.NewRouter()
	router.DefineRoutes(docs)

	if err := router.RegisterMiddleware(); err != nil {
		return err
	}

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	listener, err := listen()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownDeadline)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// newDocs opens the content directory with the configured page cache.
func newDocs() (*routes.Docs, error) {
	var cache *lrucache.Cache

	if config.Global.Cache.Enabled {
		var err error

		cache, err = lrucache.New(config.Global.Cache.Size, config.Global.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create page cache: %w", err)
		}
	}

	store := content.NewStore(os.DirFS(config.Global.Site.ContentDir), cache)

	slugs, err := store.List(locale.Default)
	if err != nil {
		return nil, fmt.Errorf("failed to read content directory %s: %w", config.Global.Site.ContentDir, err)
	}

	log.Info().
		Str("dir", config.Global.Site.ContentDir).
		Int("pages", len(slugs)).
		Msg("Loaded documentation")

	return &routes.Docs{Pages: store}, nil
}

func listen() (net.Listener, error) {
	addr := net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port)

	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = listener.Addr().String()

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		_ = listener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	log.Info().
		Str("address", addr).
		Str("url", fmt.Sprintf("http://localhost:%v/", port)).
		Msg("Listening on address")

	return listener, nil
}
