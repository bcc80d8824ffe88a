package chalito

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("default timeout = %v", cfg.API.Timeout)
	}
	if cfg.Storage.Backend != StorageBolt {
		t.Fatalf("default storage backend = %q", cfg.Storage.Backend)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"relative base url", func(c *Config) { c.API.BaseURL = "localhost:3000" }, "BaseURL"},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "BaseURL"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "Timeout"},
		{"empty login path", func(c *Config) { c.API.LoginPath = "" }, "paths"},
		{"path without slash", func(c *Config) { c.API.PedidosPath = "api/pedidos" }, "paths"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, "Backend"},
		{"bolt without path", func(c *Config) { c.Storage.Path = "" }, "Path"},
		{"negative refresh window", func(c *Config) { c.Session.EarlyRefreshWindow = -time.Second }, "EarlyRefreshWindow"},
		{"negative notice delay", func(c *Config) { c.Session.ExpiredNoticeDelay = -time.Second }, "ExpiredNoticeDelay"},
		{"zero notify buffer", func(c *Config) { c.Notify.BufferSize = 0 }, "BufferSize"},
	}

	for _, tc := range cases {
		cfg := defaultConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantMsg) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.wantMsg)
		}
	}
}

func TestMemoryBackendNeedsNoPath(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Backend = StorageMemory
	cfg.Storage.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory backend should not require a path: %v", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New()
	cfg := defaultConfig()
	cfg.Storage.Backend = StorageMemory
	b.WithConfig(cfg)

	first, err := b.Build()
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	defer first.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second build to fail")
	}
}
