// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicoding-caret/caretdocs/core/content"
	"github.com/aicoding-caret/caretdocs/server/routes"
)

const page = `---
title: "What is Caret"
---

# What is <BrandName />
`

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	router := NewRouter()
	router.DefineRoutes(&routes.Docs{Pages: content.NewStore(fstest.MapFS{
		"docs-en/getting-started/what-is-caret.mdx": {Data: []byte(page)},
	}, nil)})
	require.NoError(t, router.RegisterMiddleware())

	return router
}

func TestRouter(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	tests := []struct {
		name     string
		method   string
		target   string
		code     int
		location string
		contains string
	}{
		{
			name:     "health check",
			method:   http.MethodGet,
			target:   "/healthz",
			code:     http.StatusOK,
			contains: "ok",
		},
		{
			name:     "doc page",
			method:   http.MethodGet,
			target:   "http://docs.caret.team/en/getting-started/what-is-caret",
			code:     http.StatusOK,
			contains: "What is Caret",
		},
		{
			name:     "fallback page",
			method:   http.MethodGet,
			target:   "/de/getting-started/what-is-caret",
			code:     http.StatusOK,
			contains: `lang="de"`,
		},
		{
			name:     "uppercase locale",
			method:   http.MethodGet,
			target:   "/EN/getting-started/what-is-caret",
			code:     http.StatusMovedPermanently,
			location: "/en/getting-started/what-is-caret",
		},
		{
			name:     "trailing slash",
			method:   http.MethodGet,
			target:   "/en/getting-started/what-is-caret/",
			code:     http.StatusPermanentRedirect,
			location: "/en/getting-started/what-is-caret",
		},
		{
			name:     "favicon",
			method:   http.MethodGet,
			target:   "/favicon.ico",
			code:     http.StatusPermanentRedirect,
			location: "/img/favicon.svg",
		},
		{
			name:   "unknown section",
			method: http.MethodGet,
			target: "/search",
			code:   http.StatusNotFound,
		},
		{
			name:   "missing page",
			method: http.MethodGet,
			target: "/ko/missing",
			code:   http.StatusNotFound,
		},
		{
			name:   "wrong method",
			method: http.MethodDelete,
			target: "/en/getting-started/what-is-caret",
			code:   http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.code, rr.Code)

			if tt.location != "" {
				assert.Equal(t, tt.location, rr.Header().Get("Location"))
			}

			if tt.contains != "" {
				assert.Contains(t, rr.Body.String(), tt.contains)
			}
		})
	}
}

func TestRouterLanguageSwitch(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	form := url.Values{"locale": {"ko"}, "path": {"/en/getting-started/what-is-caret"}}
	r := httptest.NewRequest(http.MethodPost, "/language", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/ko/getting-started/what-is-caret", rr.Header().Get("Location"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestRouterSecurityHeaders(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
}
