// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hostname string
		want     ID
	}{
		{"standard docs host", "docs.careti.ai", Careti},
		{"legacy docs host", "docs.caret.team", Caret},
		{"standard subdomain", "preview.docs.careti.ai", Careti},
		{"legacy subdomain", "staging.docs.caret.team", Caret},
		{"standard service domain", "careti.ai", Careti},
		{"legacy service domain", "www.caret.team", Caret},
		{"uppercase", "DOCS.CARET.TEAM", Caret},
		{"with port", "docs.caret.team:8080", Caret},
		{"trailing dot", "docs.caret.team.", Caret},
		{"localhost", "localhost:4321", Default},
		{"unknown", "example.com", Default},
		{"empty", "", Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Resolve(tt.hostname).ID)
		})
	}
}

func TestResolverFallback(t *testing.T) {
	t.Parallel()

	res := DefaultResolver(Caret)

	assert.Equal(t, Caret, res.ResolveID("localhost"))
	assert.Equal(t, Careti, res.ResolveID("docs.careti.ai"))
	assert.Equal(t, Caret, res.Fallback().ID)

	// Unknown fallback ids select the default brand.
	assert.Equal(t, Default, DefaultResolver(ID("acme")).Fallback().ID)
}

func TestResolverPrecedence(t *testing.T) {
	t.Parallel()

	// Both rules occur within the host; declaration order decides.
	res := NewResolver(Careti,
		HostRule{Host: "caret.team", Brand: Caret},
		HostRule{Host: "mirror", Brand: Careti},
	)
	assert.Equal(t, Caret, res.ResolveID("mirror.caret.team"))

	res = NewResolver(Caret,
		HostRule{Host: "mirror", Brand: Careti},
		HostRule{Host: "caret.team", Brand: Caret},
	)
	assert.Equal(t, Careti, res.ResolveID("mirror.caret.team"))

	// An exact match beats an earlier substring rule.
	res = NewResolver(Careti,
		HostRule{Host: "caret", Brand: Careti},
		HostRule{Host: "caret.team", Brand: Caret},
	)
	assert.Equal(t, Caret, res.ResolveID("caret.team"))
	assert.Equal(t, Careti, res.ResolveID("docs.caret.team"))
}

func TestNewResolverIgnoresInvalidRules(t *testing.T) {
	t.Parallel()

	res := NewResolver(Careti,
		HostRule{Host: "", Brand: Caret},
		HostRule{Host: "acme.dev", Brand: ID("acme")},
		HostRule{Host: "Docs.Example.com", Brand: Caret},
		HostRule{Host: "docs.example.com", Brand: Careti},
	)

	assert.Equal(t, Careti, res.ResolveID("acme.dev"))
	assert.Equal(t, Caret, res.ResolveID("docs.example.com"))
}
