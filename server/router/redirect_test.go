// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRedirectTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target   string
		location string
	}{
		{"/favicon.ico", "/img/favicon.svg"},
		{"/favicon.ico?v=2", "/img/favicon.svg?v=2"},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		redirectTo("/img/favicon.svg").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

		if rr.Code != http.StatusPermanentRedirect {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusPermanentRedirect)
		}

		if location := rr.Header().Get("Location"); location != tt.location {
			t.Errorf("handler returned wrong Location header: got %q want %q", location, tt.location)
		}
	}
}
