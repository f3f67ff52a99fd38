package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DatabaseURL:        "postgres://localhost/payslips",
		JWTSecret:          "secret",
		AdminEmail:         "payroll@example.com",
		AdminPasswordHash:  "$2a$10$hash",
		MaxBodyBytes:       1048576,
		MaxUploadBytes:     10485760,
		ParseWorkers:       2,
		DispatchWorkers:    2,
		RateLimitPerMinute: 60,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("DISPATCH_WORKERS", "")
	t.Setenv("TOKEN_TTL", "")
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.DispatchWorkers != 4 {
		t.Fatalf("expected 4 dispatch workers, got %d", cfg.DispatchWorkers)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("expected 12h token ttl, got %v", cfg.TokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PARSE_WORKERS", "8")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("SMTP_PORT", "not-a-number")
	cfg := Load()
	if cfg.ParseWorkers != 8 || !cfg.EmailEnabled {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("expected fallback smtp port, got %d", cfg.SMTPPort)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing database", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: true},
		{name: "missing admin", mutate: func(c *Config) { c.AdminPasswordHash = "" }, wantErr: true},
		{name: "short production secret", mutate: func(c *Config) { c.Environment = "production" }, wantErr: true},
		{name: "email without host", mutate: func(c *Config) { c.EmailEnabled = true }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.DispatchWorkers = 0 }, wantErr: true},
		{name: "upload below body limit", mutate: func(c *Config) { c.MaxUploadBytes = 1024 }, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
