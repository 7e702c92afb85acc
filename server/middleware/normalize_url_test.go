// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
		shouldRedirect   bool
	}{
		{
			name:           "Root path should not redirect",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:           "Path without trailing slash should not redirect",
			requestURL:     "/ko/getting-started/what-is-caret",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:             "Path with trailing slash should redirect",
			requestURL:       "/ko/getting-started/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/ko/getting-started",
			shouldRedirect:   true,
		},
		{
			name:             "Repeated trailing slashes should redirect once",
			requestURL:       "/ja//",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/ja",
			shouldRedirect:   true,
		},
		{
			name:             "Uppercase locale prefix should redirect",
			requestURL:       "/KO/getting-started",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/ko/getting-started",
			shouldRedirect:   true,
		},
		{
			name:             "Mixed case bare locale should redirect",
			requestURL:       "/Fr",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/fr",
			shouldRedirect:   true,
		},
		{
			name:           "Uppercase non-locale segment should not redirect",
			requestURL:     "/Search",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:             "Query parameters should be preserved in trailing slash redirect",
			requestURL:       "/en/intro/?ref=nav&x=1",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/en/intro?ref=nav&x=1",
			shouldRedirect:   true,
		},
		{
			name:             "Query parameters should be preserved in locale redirect",
			requestURL:       "/DE/intro?ref=nav",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/de/intro?ref=nav",
			shouldRedirect:   true,
		},
		{
			name:             "Leading double slash stays on this origin",
			requestURL:       "//evil.example/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/evil.example",
			shouldRedirect:   true,
		},
		{
			name:             "Leading backslash stays on this origin",
			requestURL:       "/\\evil.example/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/evil.example",
			shouldRedirect:   true,
		},
		{
			name:             "Many leading slashes collapse",
			requestURL:       "///ko/intro/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/ko/intro",
			shouldRedirect:   true,
		},
		{
			name:             "Absolute request URI redirects to a relative path",
			requestURL:       "http://evil.example/en/intro/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/en/intro",
			shouldRedirect:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// Create a test handler that returns 200 OK
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			handler := Wrap(NormalizeURL, nextHandler)

			req := httptest.NewRequest(http.MethodGet, tt.requestURL, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			location := w.Header().Get("Location")

			switch {
			case tt.shouldRedirect && location != tt.expectedLocation:
				t.Errorf("Expected location %q, got %q", tt.expectedLocation, location)
			case !tt.shouldRedirect && location != "":
				t.Errorf("Expected no Location header, got %q", location)
			}
		})
	}
}

func TestHasTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{"/", false}, // Root should not be considered as having trailing slash
		{"/ko", false},
		{"/ko/", true},
		{"/ko/getting-started/", true},
		{"/ko/getting-started", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)

			result := hasTrailingSlash(req)
			if result != tt.expected {
				t.Errorf("hasTrailingSlash(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestLowercaseLocalePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		want     string
		expected bool
	}{
		{"/EN/intro", "/en/intro", true},
		{"/Zh", "/zh", true},
		{"/RU/", "/ru/", true},
		{"/en/intro", "", false},
		{"/EXAMPLE/intro", "", false},
		{"/", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, ok := lowercaseLocalePrefix(tt.path)
			if ok != tt.expected || got != tt.want {
				t.Errorf("lowercaseLocalePrefix(%q) = %q, %v, expected %q, %v", tt.path, got, ok, tt.want, tt.expected)
			}
		})
	}
}
