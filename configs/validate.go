// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aicoding-caret/caretdocs/core/brand"
)

// validation errors.
var (
	errInvalidSiteURL           = errors.New("site.url must be an absolute http(s) URL")
	errEmptyContentDir          = errors.New("site.contentDir cannot be empty")
	errInvalidKeyLoadBalancing  = errors.New("invalid translator.keyLoadBalancing value")
	errInvalidCacheSize         = errors.New("cache.cacheSize must be positive when the cache is enabled")
	errInvalidTranslateDelay    = errors.New("translator.delay cannot be negative")
	errInvalidLimiterRate       = errors.New("limiter.requestsPerMinute and limiter.burst must be positive")
	errInvalidLimiterPrefix     = errors.New("limiter network prefixes are out of range")
	errInvalidGeminiEndpointURL = errors.New("translator.endpoint must be an absolute http(s) URL")
	errInvalidLogFormat         = errors.New("log.logFormat must be console or json")
)

// validateAndSet validates the configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if cfg.Basic.Host == "" {
		cfg.Basic.Host = "localhost"
		log.Info().Str("host", cfg.Basic.Host).Msg("Binding to default host")
	}

	if cfg.Basic.Port == "" {
		cfg.Basic.Port = "3000"
		log.Info().Str("port", cfg.Basic.Port).Msg("Using default port")
	}

	siteURL, err := parseHTTPURL(cfg.Site.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidSiteURL, err)
	}

	cfg.Site.URL = strings.TrimSuffix(siteURL.String(), "/")

	if cfg.Site.ContentDir == "" {
		return errEmptyContentDir
	}

	cfg.Site.Brand = brand.ParseID(cfg.Site.RawBrand)
	if string(cfg.Site.Brand) != strings.ToLower(strings.TrimSpace(cfg.Site.RawBrand)) {
		log.Warn().
			Str("brand", cfg.Site.RawBrand).
			Str("using", string(cfg.Site.Brand)).
			Msg("Unknown brand, using default")
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	switch cfg.Translator.LoadBalancing {
	case "round-robin", "random", "least-recently-used":
	default:
		return errInvalidKeyLoadBalancing
	}

	if cfg.Translator.Delay < 0 {
		return errInvalidTranslateDelay
	}

	if _, err := parseHTTPURL(cfg.Translator.Endpoint); err != nil {
		return fmt.Errorf("%w: %w", errInvalidGeminiEndpointURL, err)
	}

	cfg.Translator.Endpoint = strings.TrimSuffix(cfg.Translator.Endpoint, "/")

	if cfg.Limiter.Enabled {
		if cfg.Limiter.RequestsPerMinute <= 0 || cfg.Limiter.Burst <= 0 {
			return errInvalidLimiterRate
		}

		if cfg.Limiter.IPv4Prefix < 0 || cfg.Limiter.IPv4Prefix > 32 ||
			cfg.Limiter.IPv6Prefix < 0 || cfg.Limiter.IPv6Prefix > 128 {
			return errInvalidLimiterPrefix
		}
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return errInvalidLogFormat
	}

	return nil
}

var errNotHTTP = errors.New("scheme must be http or https")

func parseHTTPURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errNotHTTP
	}

	return u, nil
}
