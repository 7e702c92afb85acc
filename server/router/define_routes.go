// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime/trace"
	"time"

	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/server/assets"
	"github.com/aicoding-caret/caretdocs/server/middleware"
	"github.com/aicoding-caret/caretdocs/server/routes"
)

// DefineRoutes sets up all the routes for the application using our custom Router.
//
// docs serves the documentation pages and the sitemap.
func (router *Router) DefineRoutes(docs *routes.Docs) {
	fileServerHandler := fileServer()

	// Serve specific files from the root of the 'assets' subdirectory.
	router.Handle("GET /img/favicon.svg", fileServerHandler)
	router.HandleFunc("GET /favicon.ico", redirectTo("/img/favicon.svg"))

	// Patterns ending in "/" are prefix matches.
	router.Handle("GET /css/", fileServerHandler)

	// Documentation images and the generated Open Graph images are
	// deployed next to the binary rather than embedded.
	staticHandler := staticFileServer(config.Global.Site.StaticDir)
	router.Handle("GET /img/", staticHandler)
	router.Handle("GET /og/", staticHandler)

	router.HandleFunc("GET /robots.txt", middleware.CatchError(routes.Robots))
	router.HandleFunc("GET /healthz", middleware.CatchError(routes.Healthz))
	router.HandleFunc("GET /sitemap.xml", middleware.CatchError(docs.Sitemap))

	// Language switcher
	router.HandleFunc("POST /language", middleware.CatchError(routes.LanguagePOST))

	// Documentation routes
	router.HandleFunc("GET /{locale}", middleware.CatchError(docs.DocPage))
	router.HandleFunc("GET /{locale}/{path...}", middleware.CatchError(docs.DocPage))

	// Index page routes
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	staticContentFS, err := fs.Sub(assets.FS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to create sub-filesystem for embedded 'assets' directory: %w", err))
	}

	fileServer := http.FileServer(http.FS(staticContentFS))
	fileServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Using a strong ETag for static files embedded via go:embed
		// ref: https://www.rfc-editor.org/rfc/rfc9110#weak.and.strong.validators
		//
		// Since go:embed requires rebuilding when files change, we use a per-instance
		// cache ID to ensure browsers fetch fresh content after any deployment.
		w.Header().Set("ETag", config.Global.Instance.FileServerCacheID)
		fileServer.ServeHTTP(w, r)
	})

	return fileServerHandler
}

// staticFileServer serves files from dir on disk.
//
// Directory listings are not served.
func staticFileServer(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(os.DirFS(dir)))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)

			return
		}

		fileServer.ServeHTTP(w, r)
	}
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	err := flightRecorder.Start()
	if err != nil {
		panic(err)
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, r *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
