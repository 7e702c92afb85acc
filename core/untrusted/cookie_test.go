// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicoding-caret/caretdocs/core/cookie"
	"github.com/aicoding-caret/caretdocs/core/locale"
)

func TestGetPreferredLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"supported", "ko", "ko"},
		{"uppercase", "JA", "ja"},
		{"unsupported", "es", ""},
		{"missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: string(cookie.LangCookie), Value: tt.cookie})
			}

			assert.Equal(t, tt.want, GetPreferredLocale(r))
		})
	}
}

func TestSetPreferredLocale(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/language", nil)
	w := httptest.NewRecorder()

	SetPreferredLocale(w, r, locale.ZH)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "caretPreferredLang", cookies[0].Name)
	assert.Equal(t, "zh", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.False(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestClearCookie(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/language", nil)
	w := httptest.NewRecorder()

	SetCookie(w, r, cookie.LangCookie, "")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(cookieExpireDelete.AddDate(0, 0, 1)))
}
