package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:              "8081",
		JWTSecret:         "0123456789abcdef0123456789abcdef",
		TokenTTL:          24 * time.Hour,
		SQLiteDBPath:      "./data/test.db",
		UpcomingBillsDays: 30,
		RecentLimit:       10,
		StatsCacheTTL:     5 * time.Minute,
		MirrorInterval:    time.Hour,
		DataBackend:       "memory",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port = %s, want 8081", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("default backend = %s, want memory", cfg.DataBackend)
	}
	if cfg.UpcomingBillsDays != 30 {
		t.Errorf("default horizon = %d, want 30", cfg.UpcomingBillsDays)
	}
	if cfg.RecentLimit != 10 {
		t.Errorf("default recent limit = %d, want 10", cfg.RecentLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", t.TempDir()+"/budget.db")
	t.Setenv("UPCOMING_BILLS_DAYS", "7")
	t.Setenv("TOKEN_TTL", "1h")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("port = %s, want 9090", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("backend = %s, want sqlite", cfg.DataBackend)
	}
	if cfg.UpcomingBillsDays != 7 {
		t.Errorf("horizon = %d, want 7", cfg.UpcomingBillsDays)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("token ttl = %v, want 1h", cfg.TokenTTL)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"bad port", func(c *Config) { c.Port = "nope" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "too short"},
		{"unknown backend", func(c *Config) { c.DataBackend = "mongo" }, "invalid data backend"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "AMQP URL scheme"},
		{"horizon too large", func(c *Config) { c.UpcomingBillsDays = 400 }, "upcoming bills horizon"},
		{"recent limit zero", func(c *Config) { c.RecentLimit = 0 }, "recent transactions limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
