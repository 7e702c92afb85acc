// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package brand resolves which product identity a page is served under.

The same documentation is published under two brands: the legacy "caret"
brand on docs.caret.team and the standard "careti" brand on docs.careti.ai.
*/
package brand

import (
	"net"
	"strings"

	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/core/particle"
)

// ID identifies a brand.
type ID string

// Known brands.
const (
	Caret  ID = "caret"
	Careti ID = "careti"
)

// Default is the brand used when neither the host nor the configuration names one.
const Default = Careti

// Brand describes one product identity.
type Brand struct {
	ID            ID
	Name          string
	NameKo        string
	Domain        string // documentation host
	ServiceDomain string // marketing site host

	// HasFinalConsonant reports whether NameKo ends in a batchim,
	// which selects the Korean particle forms.
	HasFinalConsonant bool
}

var brands = map[ID]Brand{
	Caret: {
		ID:                Caret,
		Name:              "Caret",
		NameKo:            "캐럿",
		Domain:            "docs.caret.team",
		ServiceDomain:     "caret.team",
		HasFinalConsonant: true,
	},
	Careti: {
		ID:                Careti,
		Name:              "Careti",
		NameKo:            "캐러티",
		Domain:            "docs.careti.ai",
		ServiceDomain:     "careti.ai",
		HasFinalConsonant: false,
	},
}

// Lookup returns the brand registered under id.
func Lookup(id ID) (Brand, bool) {
	b, ok := brands[id]

	return b, ok
}

// MustLookup is like Lookup but falls back to Default for unknown ids.
func MustLookup(id ID) Brand {
	if b, ok := brands[id]; ok {
		return b
	}

	return brands[Default]
}

// All returns every brand, legacy first.
func All() []Brand {
	return []Brand{brands[Caret], brands[Careti]}
}

// ParseID reads a configured brand name such as the BRAND build variable.
// Anything unrecognized selects Default.
func ParseID(s string) ID {
	switch id := ID(strings.ToLower(strings.TrimSpace(s))); id {
	case Caret, Careti:
		return id
	default:
		return Default
	}
}

// DisplayName returns the brand name as written in l.
func (b Brand) DisplayName(l locale.Locale) string {
	if l == locale.KO {
		return b.NameKo
	}

	return b.Name
}

// Mention returns the brand name for l followed by the particle for role.
//
// The particle is only appended for Korean; an empty role adds nothing.
func (b Brand) Mention(l locale.Locale, role particle.Role) string {
	name := b.DisplayName(l)
	if l != locale.KO || role == "" {
		return name
	}

	return name + particle.Select(role, b.HasFinalConsonant)
}

// ServiceURL returns the marketing site URL localized for l.
func (b Brand) ServiceURL(l locale.Locale) string {
	return "https://" + b.ServiceDomain + "/" + string(l)
}

// DocsURL returns the canonical documentation origin.
func (b Brand) DocsURL() string {
	return "https://" + b.Domain
}

// normalizeHost lowercases hostname and removes any port and trailing dot.
func normalizeHost(hostname string) string {
	host := strings.ToLower(strings.TrimSpace(hostname))

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	return strings.TrimSuffix(host, ".")
}
