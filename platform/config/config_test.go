package config

import (
	"net/http"
	"testing"
	"time"
)

func clearAdminAndSMTP(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ADMIN_USERNAME", "ADMIN_PASSWORD_HASH", "JWT_ACCESS_SECRET", "SMTP_HOST", "EMAIL_FROM_ADDRESS", "CORS_ALLOW_ALL", "CORS_ALLOW_CREDENTIALS"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearAdminAndSMTP(t)
	t.Setenv("CORS_ORIGINS", "https://buildcare.example, https://www.buildcare.example")
	t.Setenv("SITE_BASE_URL", "https://buildcare.example/")
	t.Setenv("LANGUAGE_COOKIE_SAMESITE", "strict")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.GetInquiryMaxFileSize() != 5<<20 {
		t.Errorf("expected 5 MiB attachment limit, got %d", cfg.GetInquiryMaxFileSize())
	}
	if cfg.GetSiteBaseURL() != "https://buildcare.example" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.GetSiteBaseURL())
	}
	if origins := cfg.GetCORSOrigins(); len(origins) != 2 || origins[1] != "https://www.buildcare.example" {
		t.Errorf("unexpected origins %v", origins)
	}
	if cfg.GetLanguageCookieSameSite() != http.SameSiteStrictMode {
		t.Errorf("expected strict SameSite, got %v", cfg.GetLanguageCookieSameSite())
	}
	if cfg.IsAdminEnabled() || cfg.IsSMTPEnabled() {
		t.Error("expected admin and SMTP to be off without credentials")
	}
	if cfg.GetAccessTokenTTL() != time.Hour {
		t.Errorf("expected 1h token ttl, got %v", cfg.GetAccessTokenTTL())
	}
}

func TestLoadRejectsInconsistentSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "wildcard cors with credentials",
			env:  map[string]string{"CORS_ORIGINS": "*", "CORS_ALLOW_CREDENTIALS": "true"},
		},
		{
			name: "admin without jwt secret",
			env:  map[string]string{"ADMIN_USERNAME": "admin", "ADMIN_PASSWORD_HASH": "$2a$10$abcdefghijklmnopqrstuv"},
		},
		{
			name: "smtp without sender address",
			env:  map[string]string{"SMTP_HOST": "smtp.example.com"},
		},
		{
			name: "non-positive attachment limit",
			env:  map[string]string{"INQUIRY_MAX_FILE_SIZE": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAdminAndSMTP(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected Load to fail")
			}
		})
	}
}
