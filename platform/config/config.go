// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AdminConfig provides settings for the admin login.
type AdminConfig interface {
	JWTConfig
	GetAdminUsername() string
	GetAdminPasswordHash() string
	GetAccessTokenTTL() time.Duration
	IsAdminEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SiteConfig provides the public identity of the site.
type SiteConfig interface {
	GetSiteName() string
	GetSiteBaseURL() string
	GetDefaultLanguage() string
}

// LanguageConfig provides settings for language negotiation.
type LanguageConfig interface {
	GetDefaultLanguage() string
	GetLanguageCookieSecure() bool
	GetLanguageCookieSameSite() http.SameSite
}

// InquiryConfig provides settings for the contact intake pipeline.
type InquiryConfig interface {
	GetInquiryStorageDir() string
	GetInquiryMaxFileSize() int64
	GetPhoneDefaultRegion() string
}

// RateLimitConfig provides settings for the public intake rate limiter.
type RateLimitConfig interface {
	GetInquiryRatePerMinute() float64
	GetInquiryRateBurst() int
	GetAPIRatePerSecond() float64
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketInquiries() string
	IsMinIOEnabled() bool
}

// SchedulerConfig provides settings for the asynq task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// SMTPConfig provides settings for outgoing staff email.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	IsSMTPEnabled() bool
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	GetStaffNotifyEmail() string
	GetSiteBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	SiteName             string
	SiteBaseURL          string
	DefaultLanguage      string
	InquiryStorageDir    string
	InquiryMaxFileSize   int64
	InquiryRatePerMinute float64
	InquiryRateBurst     int
	APIRatePerSecond     float64
	PhoneDefaultRegion   string
	DatabaseURL          string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinioBucketInquiries string
	RedisURL             string
	RedisTLSInsecure     bool
	AsynqQueueName       string
	AsynqConcurrency     int
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	EmailFromName        string
	EmailFromAddress     string
	StaffNotifyEmail     string
	AdminUsername        string
	AdminPasswordHash    string
	JWTAccessSecret      string
	AccessTokenTTL       time.Duration
	LanguageCookieSecure bool
	LanguageCookieSite   http.SameSite
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AdminConfig implementation
func (c *Config) GetAdminUsername() string         { return c.AdminUsername }
func (c *Config) GetAdminPasswordHash() string     { return c.AdminPasswordHash }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) IsAdminEnabled() bool {
	return c.AdminUsername != "" && c.AdminPasswordHash != ""
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SiteConfig implementation
func (c *Config) GetSiteName() string        { return c.SiteName }
func (c *Config) GetSiteBaseURL() string     { return c.SiteBaseURL }
func (c *Config) GetDefaultLanguage() string { return c.DefaultLanguage }

// LanguageConfig implementation
func (c *Config) GetLanguageCookieSecure() bool            { return c.LanguageCookieSecure }
func (c *Config) GetLanguageCookieSameSite() http.SameSite { return c.LanguageCookieSite }

// InquiryConfig implementation
func (c *Config) GetInquiryStorageDir() string  { return c.InquiryStorageDir }
func (c *Config) GetInquiryMaxFileSize() int64  { return c.InquiryMaxFileSize }
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// RateLimitConfig implementation
func (c *Config) GetInquiryRatePerMinute() float64 { return c.InquiryRatePerMinute }
func (c *Config) GetInquiryRateBurst() int         { return c.InquiryRateBurst }
func (c *Config) GetAPIRatePerSecond() float64     { return c.APIRatePerSecond }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string        { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string       { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string       { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool            { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketInquiries() string { return c.MinioBucketInquiries }
func (c *Config) IsMinIOEnabled() bool            { return c.MinIOEndpoint != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) IsSMTPEnabled() bool         { return c.SMTPHost != "" }

// NotificationConfig implementation
func (c *Config) GetStaffNotifyEmail() string { return c.StaffNotifyEmail }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:                  env,
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		SiteName:             getEnv("SITE_NAME", "BuildCare"),
		SiteBaseURL:          strings.TrimRight(getEnv("SITE_BASE_URL", "http://localhost:3000"), "/"),
		DefaultLanguage:      getEnv("DEFAULT_LANGUAGE", "en"),
		InquiryStorageDir:    getEnv("INQUIRY_STORAGE_DIR", "data/submissions"),
		InquiryMaxFileSize:   mustInt64(getEnv("INQUIRY_MAX_FILE_SIZE", "5242880")),
		InquiryRatePerMinute: mustFloat64(getEnv("INQUIRY_RATE_PER_MINUTE", "5")),
		InquiryRateBurst:     mustInt(getEnv("INQUIRY_RATE_BURST", "5")),
		APIRatePerSecond:     mustFloat64(getEnv("API_RATE_PER_SECOND", "20")),
		PhoneDefaultRegion:   getEnv("PHONE_DEFAULT_REGION", "AE"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		MinIOEndpoint:        getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:       getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:       getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:          strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketInquiries: getEnv("MINIO_BUCKET_INQUIRIES", "inquiries"),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:     mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "BuildCare Website"),
		EmailFromAddress:     getEnv("EMAIL_FROM_ADDRESS", ""),
		StaffNotifyEmail:     getEnv("STAFF_NOTIFY_EMAIL", ""),
		AdminUsername:        getEnv("ADMIN_USERNAME", ""),
		AdminPasswordHash:    getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:       mustDuration(getEnv("JWT_ACCESS_TTL", "1h")),
		LanguageCookieSecure: strings.EqualFold(env, "production"),
		LanguageCookieSite:   parseSameSite(getEnv("LANGUAGE_COOKIE_SAMESITE", "Lax")),
	}

	if cfg.InquiryMaxFileSize <= 0 {
		return nil, fmt.Errorf("INQUIRY_MAX_FILE_SIZE must be a positive number of bytes")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.IsAdminEnabled() && cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required when ADMIN_USERNAME is set")
	}
	if cfg.IsSMTPEnabled() && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when SMTP_HOST is set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat64(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
