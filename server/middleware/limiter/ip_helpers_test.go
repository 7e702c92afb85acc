// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		header     http.Header
		want       string
		ok         bool
	}{
		{
			name:       "real ip from loopback proxy",
			remoteAddr: "127.0.0.1:12345",
			header:     http.Header{"X-Real-Ip": {"2.2.2.2"}},
			want:       "2.2.2.2",
			ok:         true,
		},
		{
			name:       "last forwarded hop from private proxy",
			remoteAddr: "192.168.1.1:12345",
			header:     http.Header{"X-Forwarded-For": {"3.3.3.3, 4.4.4.4"}},
			want:       "4.4.4.4",
			ok:         true,
		},
		{
			name:       "headers ignored from public peer",
			remoteAddr: "1.1.1.1:12345",
			header:     http.Header{"X-Real-Ip": {"2.2.2.2"}},
			want:       "1.1.1.1",
			ok:         true,
		},
		{
			name:       "garbage header falls back to peer",
			remoteAddr: "10.0.0.5:80",
			header:     http.Header{"X-Real-Ip": {"not-an-ip"}},
			want:       "10.0.0.5",
			ok:         true,
		},
		{
			name:       "ipv4 mapped peer",
			remoteAddr: "[::ffff:8.8.8.8]:443",
			want:       "8.8.8.8",
			ok:         true,
		},
		{
			name:       "unparsable peer",
			remoteAddr: "pipe",
			ok:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			addr, ok := clientAddr(&http.Request{RemoteAddr: tt.remoteAddr, Header: tt.header})

			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, addr.String())
			}
		})
	}
}

func TestInPassList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		entries []string
		want    bool
	}{
		{"exact address", "192.168.1.1", []string{"192.168.1.1"}, true},
		{"inside prefix", "192.168.1.1", []string{"192.168.1.0/24"}, true},
		{"outside prefix", "192.168.1.1", []string{"10.0.0.0/8"}, false},
		{"ipv6 prefix", "2001:db8::7", []string{"2001:db8::/32"}, true},
		{"malformed entry", "192.168.1.1", []string{"192.168.1.1/99", "nope"}, false},
		{"empty list", "192.168.1.1", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, inPassList(netip.MustParseAddr(tt.addr), tt.entries))
		})
	}
}

func TestNetworkPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "192.168.1.0/24", networkPrefix(netip.MustParseAddr("192.168.1.77"), 24, 48).String())
	assert.Equal(t, "2001:db8::/48", networkPrefix(netip.MustParseAddr("2001:db8::1"), 24, 48).String())
	assert.Equal(t, "192.168.1.77/32", networkPrefix(netip.MustParseAddr("192.168.1.77"), 40, 48).String())
}
