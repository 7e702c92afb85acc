// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"time"

	"github.com/aicoding-caret/caretdocs/core/brand"
)

const (
	defaultCacheTTLMinutes = 60

	defaultHTTPCacheMaxAgeSeconds               = 300
	defaultHTTPCacheStaleWhileRevalidateSeconds = 3600

	// Gemini requests are paced by this delay; there is no retry.
	defaultTranslateDelayMs   = 500
	defaultTranslateTimeoutS  = 120
	defaultKeyBaseTimeoutMs   = 1000
	defaultKeyMaxBackoffTimeS = 32

	defaultLimiterRequestsPerMinute = 120
	defaultLimiterBurst             = 60

	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel    = "gemini-3-flash-preview"
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "3000"

	cfg.Site.URL = brand.MustLookup(brand.Default).DocsURL()
	cfg.Site.ContentDir = "."
	cfg.Site.StaticDir = "./static"
	cfg.Site.RawBrand = string(brand.Default)

	cfg.Cache.Enabled = true
	cfg.Cache.Size = 256
	cfg.Cache.TTL = defaultCacheTTLMinutes * time.Minute

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateSeconds * time.Second

	cfg.Translator.Endpoint = DefaultGeminiEndpoint
	cfg.Translator.Model = DefaultGeminiModel
	cfg.Translator.Delay = defaultTranslateDelayMs * time.Millisecond
	cfg.Translator.Timeout = defaultTranslateTimeoutS * time.Second
	cfg.Translator.LogDir = "./work-logs"
	cfg.Translator.LoadBalancing = "round-robin"
	cfg.Translator.BaseTimeout = defaultKeyBaseTimeoutMs * time.Millisecond
	cfg.Translator.MaxBackoff = defaultKeyMaxBackoffTimeS * time.Second

	cfg.Limiter.Enabled = false
	cfg.Limiter.RequestsPerMinute = defaultLimiterRequestsPerMinute
	cfg.Limiter.Burst = defaultLimiterBurst
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48

	cfg.Instance.RepoURL = "https://github.com/aicoding-caret/caret-docs"

	cfg.Development.SaveResponses = false
	cfg.Development.ResponseSaveLocation = "/tmp/caretdocs/responses"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Internationalization.StrictMissingKeys = false
}
