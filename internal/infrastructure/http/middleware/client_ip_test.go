package middleware_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozalperen/auth-service/internal/infrastructure/http/middleware"
)

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "x-forwarded-for wins over everything",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1", "X-Real-IP": "10.0.0.2"},
			remoteAddr: "10.0.0.3:443",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for first entry is trimmed",
			headers:    map[string]string{"X-Forwarded-For": "  203.0.113.7 , 10.0.0.1"},
			remoteAddr: "10.0.0.3:443",
			want:       "203.0.113.7",
		},
		{
			name:       "invalid forwarded entry falls through to next header",
			headers:    map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": "198.51.100.4"},
			remoteAddr: "10.0.0.3:443",
			want:       "198.51.100.4",
		},
		{
			name:       "x-real-ip before cf-connecting-ip",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4", "CF-Connecting-IP": "198.51.100.5"},
			remoteAddr: "10.0.0.3:443",
			want:       "198.51.100.4",
		},
		{
			name:       "cf-connecting-ip when nothing earlier",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.5"},
			remoteAddr: "10.0.0.3:443",
			want:       "198.51.100.5",
		},
		{
			name:       "x-client-ip fallback",
			headers:    map[string]string{"X-Client-IP": "198.51.100.6"},
			remoteAddr: "10.0.0.3:443",
			want:       "198.51.100.6",
		},
		{
			name:       "x-cluster-client-ip fallback",
			headers:    map[string]string{"X-Cluster-Client-IP": "198.51.100.7"},
			remoteAddr: "10.0.0.3:443",
			want:       "198.51.100.7",
		},
		{
			name:       "remote addr with port",
			headers:    nil,
			remoteAddr: "192.168.1.20:54321",
			want:       "192.168.1.20",
		},
		{
			name:       "remote addr without port",
			headers:    nil,
			remoteAddr: "192.168.1.20",
			want:       "192.168.1.20",
		},
		{
			name:       "ipv4 mapped ipv6 prefix stripped",
			headers:    nil,
			remoteAddr: "::ffff:192.168.1.20",
			want:       "192.168.1.20",
		},
		{
			name:       "ipv6 remote addr with port",
			headers:    nil,
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "nothing resolvable",
			headers:    nil,
			remoteAddr: "",
			want:       "unknown",
		},
		{
			name:       "garbage remote addr",
			headers:    nil,
			remoteAddr: "bogus",
			want:       "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for name, value := range tt.headers {
				header.Set(name, value)
			}
			assert.Equal(t, tt.want, middleware.ResolveClientIP(header, tt.remoteAddr))
		})
	}
}

func TestResolveUserAgent(t *testing.T) {
	t.Run("returns header value", func(t *testing.T) {
		header := http.Header{}
		header.Set("User-Agent", "Mozilla/5.0")

		ua := middleware.ResolveUserAgent(header)
		assert.NotNil(t, ua)
		assert.Equal(t, "Mozilla/5.0", *ua)
	})

	t.Run("nil when absent", func(t *testing.T) {
		assert.Nil(t, middleware.ResolveUserAgent(http.Header{}))
	})
}
