// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
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
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// AuthConfig provides settings for verifying the acting user.
// When a JWT secret is present tokens are verified locally, otherwise
// every request is checked against the external auth API.
type AuthConfig interface {
	GetAuthAPIURL() string
	GetJWTAccessSecret() string
	GetAuthTimeout() time.Duration
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketAssets() string
	IsMinIOEnabled() bool
}

// RedisConfig provides settings for the Redis connection used by drafts.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// WizardConfig provides settings shared by the listing wizards.
type WizardConfig interface {
	GetAutosaveInterval() time.Duration
	GetDraftTTL() time.Duration
	GetRedirectDelay() time.Duration
}

// SchedulerConfig provides settings for the asynq scheduler.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// EmailConfig provides settings for admin notification emails.
type EmailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAdminNotifyEmail() string
	IsEmailEnabled() bool
}

// LocaleConfig provides localisation defaults.
type LocaleConfig interface {
	GetDefaultLocale() string
	GetPhoneRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	DatabaseURL      string
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	AuthAPIURL       string
	JWTAccessSecret  string
	AuthTimeout      time.Duration
	MinIOEndpoint    string
	MinIOAccessKey   string
	MinIOSecretKey   string
	MinIOUseSSL      bool
	MinIOMaxFileSize int64
	MinioBucketAsset string
	RedisURL         string
	RedisTLSInsecure bool
	AutosaveInterval time.Duration
	DraftTTL         time.Duration
	RedirectDelay    time.Duration
	AsynqQueueName   string
	AsynqConcurrency int
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	AdminNotifyEmail string
	DefaultLocale    string
	PhoneRegion      string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// AuthConfig implementation
func (c *Config) GetAuthAPIURL() string         { return c.AuthAPIURL }
func (c *Config) GetJWTAccessSecret() string    { return c.JWTAccessSecret }
func (c *Config) GetAuthTimeout() time.Duration { return c.AuthTimeout }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketAssets() string {
	return c.MinioBucketAsset
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// RedisConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

// WizardConfig implementation
func (c *Config) GetAutosaveInterval() time.Duration { return c.AutosaveInterval }
func (c *Config) GetDraftTTL() time.Duration         { return c.DraftTTL }
func (c *Config) GetRedirectDelay() time.Duration    { return c.RedirectDelay }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// EmailConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetAdminNotifyEmail() string { return c.AdminNotifyEmail }
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailFromAddress != "" && c.AdminNotifyEmail != ""
}

// LocaleConfig implementation
func (c *Config) GetDefaultLocale() string { return c.DefaultLocale }
func (c *Config) GetPhoneRegion() string   { return c.PhoneRegion }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AuthAPIURL:       strings.TrimRight(getEnv("AUTH_API_URL", ""), "/"),
		JWTAccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
		AuthTimeout:      mustDuration(getEnv("AUTH_TIMEOUT", "5s")),
		MinIOEndpoint:    getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:   getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:      strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize: mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinioBucketAsset: getEnv("MINIO_BUCKET_ASSETS", "listing-assets"),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AutosaveInterval: mustDuration(getEnv("WIZARD_AUTOSAVE_INTERVAL", "30s")),
		DraftTTL:         mustDuration(getEnv("WIZARD_DRAFT_TTL", "168h")),
		RedirectDelay:    mustDuration(getEnv("WIZARD_REDIRECT_DELAY", "3s")),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: int(mustInt64(getEnv("ASYNQ_CONCURRENCY", "5"))),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Horse Services"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		AdminNotifyEmail: getEnv("ADMIN_NOTIFY_EMAIL", ""),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "ar"),
		PhoneRegion:      strings.ToUpper(getEnv("PHONE_REGION", "EG")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AuthAPIURL == "" && cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("AUTH_API_URL or JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.AutosaveInterval <= 0 {
		return nil, fmt.Errorf("WIZARD_AUTOSAVE_INTERVAL must be a positive duration")
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
