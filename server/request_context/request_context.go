// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package request_context provides per-request state management for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/idgen"
	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/untrusted"
	"github.com/aicoding-caret/caretdocs/i18n"
)

// RequestContext carries request-scoped data through the middleware chain.
//
// This data survives the entire lifetime of a single HTTP request and is safe
// for concurrent access from multiple goroutines handling the same request.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// Holds any critical error encountered during request processing.
	//
	// Automatically populated by middleware.CatchError when handlers return errors,
	// which interrupts normal response handling and renders an error page instead.
	RequestError error

	// HTTP status code to be sent in the response. Defaults to 200 OK.
	StatusCode int

	// Locale is the active documentation locale, see locale.Resolve.
	Locale locale.Locale

	// Brand is the product identity the request is served under.
	Brand brand.Brand

	CommonData PageCommonData

	T language.Tag
}

// requestContextKeyType defines a unique type for a RequestContext key.
type requestContextKeyType struct{}

// requestContextKey is a unique key used to access RequestContext
// values from a context.Context.
var requestContextKey = requestContextKeyType{}

// WithRequestContext initializes a new request context and attaches it to
// the parent context.
//
// The locale comes from the path. Only the site root consults the stored
// preference, and without one, the Accept-Language header.
func WithRequestContext(ctx context.Context, r *http.Request, res *brand.Resolver) context.Context {
	stored := untrusted.GetPreferredLocale(r)
	if stored == "" && strings.Trim(r.URL.Path, "/") == "" {
		stored = string(locale.Detect(r.Header.Get("Accept-Language")))
	}

	l := locale.Resolve(r.URL.Path, stored)
	ctx = i18n.WithLocale(ctx, l)

	rc := RequestContext{
		RequestID:  idgen.Make(),
		StatusCode: http.StatusOK,
		Locale:     l,
		Brand:      res.Resolve(r.Host),
		T:          i18n.TagFrom(ctx),
	}
	PopulatePageCommonData(r, rc.Brand, &rc.CommonData)

	return context.WithValue(ctx, requestContextKey, &rc)
}

// FromContext extracts the RequestContext from a context, always returning
// a valid pointer.
//
// If no context is found, returns an instance for the default locale and brand.
func FromContext(ctx context.Context) *RequestContext {
	if v := ctx.Value(requestContextKey); v != nil {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}

	return &RequestContext{
		StatusCode: http.StatusOK,
		Locale:     locale.Default,
		Brand:      brand.MustLookup(brand.Default),
		T:          i18n.TagFrom(ctx),
	}
}

// FromRequest is a convenience wrapper for extracting RequestContext
// directly from HTTP requests.
//
// Prefer this in handlers that have access to the *http.Request object.
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
