// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package translate machine translates the English documentation into the
languages that have no human translation, using the Gemini
generative-language API.

Calls are strictly sequential with a fixed pause between them and are
never retried: a failed file is logged, counted and skipped.
*/
package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/aicoding-caret/caretdocs/core/audit"
	"github.com/aicoding-caret/caretdocs/core/requests"
	"github.com/aicoding-caret/caretdocs/core/tokenmanager"
)

var (
	// ErrNoAPIKey is returned when neither GEMINI_TOKEN nor GEMINI_API_KEY is set.
	ErrNoAPIKey = errors.New("GEMINI_TOKEN or GEMINI_API_KEY environment variable not set")

	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("model returned no text")
)

// apiKeyHeader carries the key so that it never appears in logged URLs.
const apiKeyHeader = "X-Goog-Api-Key"

// ClientOptions configures a Client.
type ClientOptions struct {
	APIKeys  []string
	Endpoint string
	Model    string

	// Timeout bounds a single call. Zero means no timeout.
	Timeout time.Duration

	LoadBalancing string
	BaseTimeout   time.Duration
	MaxBackoff    time.Duration

	HTTPClient *http.Client
}

// Client calls the generateContent method of one model.
type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
	tokens  *tokenmanager.TokenManager
}

// NewClient returns a Client, or ErrNoAPIKey when opts holds no key.
func NewClient(opts ClientOptions) (*Client, error) {
	tokens := tokenmanager.New(opts.APIKeys, opts.BaseTimeout, opts.MaxBackoff, opts.LoadBalancing)
	if tokens.Len() == 0 {
		return nil, ErrNoAPIKey
	}

	client := opts.HTTPClient
	if client == nil {
		client = requests.HTTPClient
	}

	return &Client{
		url:     strings.TrimSuffix(opts.Endpoint, "/") + "/models/" + opts.Model + ":generateContent",
		timeout: opts.Timeout,
		http:    client,
		tokens:  tokens,
	}, nil
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

// Generate sends prompt to the model and returns the text of the first candidate.
//
// Keys that were rejected or throttled are set aside by the token manager,
// but the call itself is not repeated.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	token := c.tokens.GetToken()
	if token == nil {
		return "", ErrNoAPIKey
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := requests.PostJSON(ctx, c.http, requests.RequestOptions{
		URL:         c.url,
		Header:      http.Header{apiKeyHeader: {token.Value}},
		Payload:     generateRequest{Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}}},
		Destination: audit.ToGemini,
	})
	if err != nil {
		var apiErr *requests.APIError
		if errors.As(err, &apiErr) && (apiErr.Throttled() || apiErr.StatusCode == http.StatusForbidden) {
			c.tokens.MarkTokenStatus(token, tokenmanager.TimedOut)
		}

		return "", fmt.Errorf("generateContent: %w", err)
	}

	c.tokens.MarkTokenStatus(token, tokenmanager.Good)

	var text strings.Builder

	for _, part := range gjson.GetBytes(body, "candidates.0.content.parts.#.text").Array() {
		text.WriteString(part.String())
	}

	if text.Len() == 0 {
		reason := gjson.GetBytes(body, "promptFeedback.blockReason").String()
		if reason == "" {
			reason = gjson.GetBytes(body, "candidates.0.finishReason").String()
		}

		if reason == "" {
			return "", ErrEmptyResponse
		}

		return "", fmt.Errorf("%w (reason: %s)", ErrEmptyResponse, reason)
	}

	return text.String(), nil
}
