// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"

	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/server/middleware"
	"github.com/aicoding-caret/caretdocs/server/middleware/limiter"
	"github.com/aicoding-caret/caretdocs/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware() error {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL) // lowercase locale prefixes and trim trailing slashes

	if config.Global.Limiter.Enabled {
		lim := limiter.New(limiter.Config{
			RequestsPerMinute: config.Global.Limiter.RequestsPerMinute,
			Burst:             config.Global.Limiter.Burst,
			IPv4Prefix:        config.Global.Limiter.IPv4Prefix,
			IPv6Prefix:        config.Global.Limiter.IPv6Prefix,
			PassIPs:           config.Global.Limiter.PassIPs,
		})

		router.Use(lim.Evaluate)
	}

	resolver := brand.DefaultResolver(config.Global.Site.Brand)
	router.Use(set_request_context.WithRequestContext(resolver)) // needed for everything else
	router.Use(middleware.SetResponseHeaders)                    // all pages need this

	compress, err := middleware.Compress()
	if err != nil {
		return fmt.Errorf("failed to create compression middleware: %w", err)
	}

	router.Use(compress)

	return nil
}
