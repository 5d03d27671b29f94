// Copyright 2025 Anna Vollmer
// Licensed under the EUPL-1.2

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host     string
		expected bool
	}{
		{"localhost", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"", true},
		{"app.localhost", true},
		{"example.com", false},
		{"192.168.1.10", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLocalhost(tt.host))
		})
	}
}

func TestBuildBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		tlsMode  string
		expected string
	}{
		{"localhost dev", "localhost", 8080, "auto", "http://localhost:8080"},
		{"localhost off", "localhost", 80, "off", "http://localhost"},
		{"acme hides port", "example.com", 8080, "acme", "https://example.com"},
		{"manual keeps port", "example.com", 8443, "manual", "https://example.com:8443"},
		{"manual default port", "example.com", 443, "manual", "https://example.com"},
		{"public auto is https", "example.com", 443, "auto", "https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Host: tt.host, Port: tt.port},
				TLS:    TLSConfig{Mode: tt.tlsMode},
			}
			assert.Equal(t, tt.expected, buildBaseURL(cfg))
		})
	}
}

func TestFlags_CoverAllConfigSections(t *testing.T) {
	names := make(map[string]bool)
	for _, flag := range Flags() {
		for _, name := range flag.Names() {
			names[name] = true
		}
	}

	for _, required := range []string{
		"host", "port", "base-url", "log-level", "database-dsn",
		"tls-mode", "session-cookie-name", "session-hash-key",
		"smtp-host", "smtp-from",
	} {
		assert.True(t, names[required], "missing flag %q", required)
	}
}
