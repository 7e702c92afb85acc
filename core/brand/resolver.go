// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package brand

import "strings"

// HostRule maps a host (or host fragment) to a brand.
type HostRule struct {
	Host  string
	Brand ID
}

// DefaultHostRules is the built-in host table.
//
// Order is the substring match precedence: documentation hosts come before
// the bare service domains they contain, so "docs.careti.ai" is tried
// before "careti.ai".
var DefaultHostRules = []HostRule{
	{Host: "docs.careti.ai", Brand: Careti},
	{Host: "docs.caret.team", Brand: Caret},
	{Host: "careti.ai", Brand: Careti},
	{Host: "caret.team", Brand: Caret},
}

// Resolver maps request hostnames to brands.
//
// A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	rules    []HostRule
	exact    map[string]ID
	fallback ID
}

// NewResolver builds a Resolver over rules, in the given precedence order.
// Hosts are compared case-insensitively. Rules naming unknown brands are ignored.
func NewResolver(fallback ID, rules ...HostRule) *Resolver {
	if _, ok := brands[fallback]; !ok {
		fallback = Default
	}

	res := &Resolver{
		rules:    make([]HostRule, 0, len(rules)),
		exact:    make(map[string]ID, len(rules)),
		fallback: fallback,
	}

	for _, rule := range rules {
		if _, ok := brands[rule.Brand]; !ok {
			continue
		}

		host := normalizeHost(rule.Host)
		if host == "" {
			continue
		}

		// First declaration wins for duplicate hosts.
		if _, dup := res.exact[host]; dup {
			continue
		}

		res.exact[host] = rule.Brand
		res.rules = append(res.rules, HostRule{Host: host, Brand: rule.Brand})
	}

	return res
}

// DefaultResolver returns a Resolver over DefaultHostRules.
func DefaultResolver(fallback ID) *Resolver {
	return NewResolver(fallback, DefaultHostRules...)
}

// Resolve returns the brand for hostname.
//
// An exact host match is tried first. Otherwise the first rule, in
// declaration order, whose host occurs within hostname wins. Otherwise the
// fallback brand is returned. Ports are ignored.
func (res *Resolver) Resolve(hostname string) Brand {
	return brands[res.ResolveID(hostname)]
}

// ResolveID is like Resolve but returns only the brand ID.
func (res *Resolver) ResolveID(hostname string) ID {
	host := normalizeHost(hostname)
	if host == "" {
		return res.fallback
	}

	if id, ok := res.exact[host]; ok {
		return id
	}

	for _, rule := range res.rules {
		if strings.Contains(host, rule.Host) {
			return rule.Brand
		}
	}

	return res.fallback
}

// Fallback returns the brand used for unmatched hosts.
func (res *Resolver) Fallback() Brand {
	return brands[res.fallback]
}

var defaultResolver = DefaultResolver(Default)

// Resolve resolves hostname against DefaultHostRules with Default as fallback.
func Resolve(hostname string) Brand {
	return defaultResolver.Resolve(hostname)
}
