// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/server/middleware"
	"github.com/aicoding-caret/caretdocs/server/request_context"
)

// WithRequestContext returns a middleware that attaches a RequestContext,
// resolving the brand with res, to each HTTP request.
func WithRequestContext(res *brand.Resolver) middleware.Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		next.ServeHTTP(w, r.WithContext(request_context.WithRequestContext(r.Context(), r, res)))
	}
}
