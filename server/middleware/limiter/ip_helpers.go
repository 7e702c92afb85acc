// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/rs/zerolog/log"
)

// clientAddr returns the address a request is rate limited under.
//
// X-Real-IP, then the last X-Forwarded-For hop, are honoured only when the
// connection itself comes from a loopback or private address, such as a
// reverse proxy in front of the docs server.
func clientAddr(r *http.Request) (netip.Addr, bool) {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	remote, err := netip.ParseAddr(host)
	if err != nil {
		log.Error().Str("remote_addr", r.RemoteAddr).Msg("Could not determine client IP")

		return netip.Addr{}, false
	}

	remote = remote.Unmap()

	if !remote.IsLoopback() && !remote.IsPrivate() {
		return remote, true
	}

	if forwarded, ok := forwardedAddr(r.Header); ok {
		return forwarded, true
	}

	return remote, true
}

func forwardedAddr(h http.Header) (netip.Addr, bool) {
	candidate := strings.TrimSpace(h.Get("X-Real-IP"))

	if candidate == "" {
		if xff := h.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			candidate = strings.TrimSpace(hops[len(hops)-1])
		}
	}

	if candidate == "" {
		return netip.Addr{}, false
	}

	addr, err := netip.ParseAddr(candidate)
	if err != nil {
		log.Debug().Str("forwarded", candidate).Msg("Ignoring unparsable forwarded address")

		return netip.Addr{}, false
	}

	return addr.Unmap(), true
}

// inPassList reports whether addr equals, or falls inside, any entry.
// Entries are single addresses or CIDR prefixes; malformed ones never match.
func inPassList(addr netip.Addr, entries []string) bool {
	for _, entry := range entries {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			if prefix.Contains(addr) {
				return true
			}

			continue
		}

		if other, err := netip.ParseAddr(entry); err == nil && other.Unmap() == addr {
			return true
		}
	}

	return false
}

// networkPrefix masks addr to the IPv4 or IPv6 prefix length that groups
// clients into one bucket.
func networkPrefix(addr netip.Addr, ipv4Bits, ipv6Bits int) netip.Prefix {
	bits := ipv6Bits
	if addr.Is4() {
		bits = ipv4Bits
	}

	prefix, err := addr.Prefix(bits)
	if err != nil {
		return netip.PrefixFrom(addr, addr.BitLen())
	}

	return prefix
}
