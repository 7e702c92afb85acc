// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package requests performs audited outbound HTTP requests against JSON APIs.
*/
package requests

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aicoding-caret/caretdocs/core/audit"
	"github.com/aicoding-caret/caretdocs/core/idgen"
)

const (
	clientSessionCacheSize = 8
	maxIdleConnsPerHost    = 4
)

// HTTPClient is the shared client for outbound API traffic.
var HTTPClient = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{
			ClientSessionCache: tls.NewLRUClientSessionCache(clientSessionCacheSize),
			MinVersion:         tls.VersionTLS12,
		},
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
	},
}

var (
	// ErrAPIResponse marks a non-2xx response; see APIError.
	ErrAPIResponse = errors.New("API response indicated error")

	errInvalidJSON = errors.New("response contained invalid JSON")
)

// APIError is returned for responses with a status code of 400 or above.
type APIError struct {
	StatusCode int

	// Message is the upstream error message, or the status text.
	Message string

	Err error
}

func (e *APIError) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	fmt.Fprintf(&b, " (status code: %d)", e.StatusCode)

	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Throttled reports whether the upstream asked us to slow down or failed
// on its side, as opposed to rejecting the request itself.
func (e *APIError) Throttled() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// RequestOptions describes one request.
type RequestOptions struct {
	Method      string
	URL         string
	Header      http.Header
	Payload     any // JSON-encoded unless already []byte
	Destination audit.TrafficDestination

	// LogURL replaces URL in logs and metrics when the URL carries secrets.
	LogURL string
}

// PostJSON sends payload as JSON and returns the validated JSON response body.
func PostJSON(ctx context.Context, client *http.Client, opts RequestOptions) ([]byte, error) {
	opts.Method = http.MethodPost

	if opts.Header == nil {
		opts.Header = make(http.Header)
	}

	opts.Header.Set("Content-Type", "application/json")

	_, body, err := Do(ctx, client, opts)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %.200s", errInvalidJSON, body)
	}

	return body, nil
}

// Do performs the request, records it as an audit span and converts error
// statuses into *APIError. The returned response body has already been read.
func Do(ctx context.Context, client *http.Client, opts RequestOptions) (_ *http.Response, _ []byte, err error) {
	if client == nil {
		client = HTTPClient
	}

	var reqBody io.Reader

	switch p := opts.Payload.(type) {
	case nil:
	case []byte:
		reqBody = bytes.NewReader(p)
	default:
		encoded, err := json.Marshal(p)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode payload: %w", err)
		}

		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	logURL := opts.LogURL
	if logURL == "" {
		logURL = opts.URL
	}

	span := audit.Span{
		Destination: opts.Destination,
		RequestID:   idgen.Make(),
		Method:      opts.Method,
		URL:         logURL,
	}

	span.Begin(ctx)

	defer func() {
		span.Error = err
		span.End()
		span.Log()
	}()

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.Body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, body, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.StatusCode),
			Err:        ErrAPIResponse,
		}
	}

	return resp, body, nil
}

// errorMessage extracts an error message from common JSON error shapes.
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error.message", "message", "error"} {
			if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.Str != "" {
				return r.Str
			}
		}
	}

	if text := http.StatusText(status); text != "" {
		return text
	}

	return "unknown API error"
}
