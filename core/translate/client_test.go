// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package translate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/aicoding-caret/caretdocs/core/requests"
	"github.com/aicoding-caret/caretdocs/core/tokenmanager"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, keys ...string) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{
		APIKeys:       keys,
		Endpoint:      srv.URL + "/v1beta/",
		Model:         "test-model",
		LoadBalancing: tokenmanager.RoundRobin,
		HTTPClient:    srv.Client(),
	})
	require.NoError(t, err)

	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient(ClientOptions{APIKeys: []string{"", ""}})
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewClient(ClientOptions{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.RawQuery)

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "Bonjour?", gjson.GetBytes(body, "contents.0.parts.0.text").String())

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Bon"},{"text":"jour"}]}}]}`))
	}, "key-1")

	text, err := client.Generate(context.Background(), "Bonjour?")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", text)
}

func TestGenerateRotatesKeys(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("x-goog-api-key"))
		mu.Unlock()

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}, "a", "b")

	for range 3 {
		_, err := client.Generate(context.Background(), "x")
		require.NoError(t, err)
	}

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{"a", "b", "a"}, seen)
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"quota"}}`, requests.ErrAPIResponse},
		{"bad key", http.StatusBadRequest, `{"error":{"message":"API key not valid"}}`, requests.ErrAPIResponse},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, ErrEmptyResponse},
		{"no candidates", http.StatusOK, `{}`, ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "key")

			_, err := client.Generate(context.Background(), "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			// Failed calls are never retried.
			assert.Equal(t, int32(1), calls.Load())

			var apiErr *requests.APIError
			if errors.As(err, &apiErr) {
				assert.Equal(t, tt.status, apiErr.StatusCode)
			}
		})
	}
}
