// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/aicoding-caret/caretdocs/core/audit"
)

func TestPostJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Key"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "hello", gjson.GetBytes(body, "text").String())

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	body, err := PostJSON(context.Background(), srv.Client(), RequestOptions{
		URL:         srv.URL,
		Header:      http.Header{"X-Key": []string{"secret"}},
		Payload:     map[string]string{"text": "hello"},
		Destination: audit.ToGemini,
	})
	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(body, "ok").Bool())
}

func TestPostJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		message   string
		throttled bool
	}{
		{"google error shape", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid"}}`, "API key not valid", false},
		{"flat message", http.StatusForbidden, `{"message":"denied"}`, "denied", false},
		{"rate limited", http.StatusTooManyRequests, `not json`, "Too Many Requests", true},
		{"server error", http.StatusServiceUnavailable, ``, "Service Unavailable", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := PostJSON(context.Background(), srv.Client(), RequestOptions{URL: srv.URL, Payload: []byte(`{}`)})
			require.ErrorIs(t, err, ErrAPIResponse)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.throttled, apiErr.Throttled())
		})
	}
}

func TestPostJSONInvalidBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	t.Cleanup(srv.Close)

	_, err := PostJSON(context.Background(), srv.Client(), RequestOptions{URL: srv.URL})
	assert.ErrorIs(t, err, errInvalidJSON)
}
