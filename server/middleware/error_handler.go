// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"github.com/aicoding-caret/caretdocs/configs"
	"github.com/aicoding-caret/caretdocs/core/audit"
	"github.com/aicoding-caret/caretdocs/core/content"
	"github.com/aicoding-caret/caretdocs/server/request_context"
	"github.com/aicoding-caret/caretdocs/server/routes"
)

// FallibleHandler is a handler that reports failure by returning an error
// instead of writing an error page itself.
type FallibleHandler func(w http.ResponseWriter, r *http.Request) error

// CatchError turns a FallibleHandler into an http.HandlerFunc.
//
// The handler writes into a buffer. A missing page (content.ErrNotFound or
// a 404 status) is replaced by the localized not found page, and an error
// returned without an error status becomes a 500 page. Anything else is
// flushed to the client unchanged. Every request is logged as an audit span.
func CatchError(handler FallibleHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToUser,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
		}

		_ = span.Begin(r.Context())
		defer span.End()

		buf := httptest.NewRecorder()
		err := handler(buf, r)
		ctx.RequestError = err

		if status, failed := failureStatus(buf.Code, err); failed {
			ctx.StatusCode = status
			writeErrorPage(w, r, status)
		} else {
			flush(w, buf)
			ctx.StatusCode = buf.Code
		}

		span.StatusCode = ctx.StatusCode
		span.Error = err

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}

// failureStatus decides whether the buffered response is replaced by an
// error page, and with which status.
func failureStatus(code int, err error) (int, bool) {
	switch {
	case code == http.StatusNotFound, errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound, true
	case err != nil && code < http.StatusBadRequest:
		return http.StatusInternalServerError, true
	default:
		return code, false
	}
}

func writeErrorPage(w http.ResponseWriter, r *http.Request, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	// ErrorPage reads the status back from the request context.
	routes.ErrorPage(w, r)
}

// flush copies a buffered response to w. A handler that never wrote a
// status is treated as 200.
func flush(w http.ResponseWriter, buf *httptest.ResponseRecorder) {
	if buf.Code == 0 {
		buf.Code = http.StatusOK
	}

	maps.Copy(w.Header(), buf.Header())
	w.WriteHeader(buf.Code)

	if _, err := buf.Body.WriteTo(w); err != nil {
		log.Err(err).Msg("Failed to write response body")
	}
}
