// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Audit journal backends.
const (
	AuditDriverNone     = "none"
	AuditDriverSQLite   = "sqlite"
	AuditDriverPostgres = "postgres"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Session  SessionConfig
	Audit    AuditConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Display  DisplayConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080" min:"1" max:"65535"`

	// ReadTimeout is the maximum duration for reading a request, upload included (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// UploadConfig holds batch upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum accepted JSONL size in bytes (default: 32MiB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"33554432" min:"1"`

	// MaxConcurrent caps uploads parsed at the same time (default: 4)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4" min:"1"`

	// MaxWait is how long an upload waits for a parse slot (default: 30s)
	MaxWait time.Duration `env:"UPLOAD_MAX_WAIT" default:"30s"`
}

// SessionConfig holds review session settings.
type SessionConfig struct {
	// IdleTimeout discards sessions without activity for this long (default: 2h)
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" default:"2h"`

	// MaxSessions caps concurrently open sessions (default: 100)
	MaxSessions int `env:"SESSION_MAX" default:"100" min:"1"`

	// ReapInterval is how often idle sessions are looked for (default: 5m)
	ReapInterval time.Duration `env:"SESSION_REAP_INTERVAL" default:"5m"`
}

// AuditConfig holds edit journal settings.
type AuditConfig struct {
	// Driver selects the journal backend: none, sqlite or postgres (default: none)
	Driver string `env:"AUDIT_DRIVER" default:"none"`

	// DSN is the connection string; DATABASE_URL is accepted for postgres
	DSN string `env:"AUDIT_DSN" envAlt:"DATABASE_URL"`

	// MaxConns is the maximum number of pooled connections (default: 5)
	MaxConns int `env:"AUDIT_MAX_CONNS" default:"5" min:"1"`

	// MinConns is the minimum number of idle connections kept open (default: 1)
	MinConns int `env:"AUDIT_MIN_CONNS" default:"1" min:"0"`

	// RetentionDays purges journal entries older than this; 0 keeps them (default: 90)
	RetentionDays int `env:"AUDIT_RETENTION_DAYS" default:"90" min:"0"`
}

// RateLimitConfig holds rate limiting settings per client IP.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose X-Real-IP is honored
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// AllowedOrigins is a comma-separated list of CORS origins for /api (default: none)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// DisplayConfig holds the default heights, in pixels, of the review form's
// text areas. They only affect rendering, never stored data.
type DisplayConfig struct {
	QuestionHeight int `env:"DISPLAY_QUESTION_HEIGHT" default:"200" min:"100" max:"500" step:"50"`
	OptionHeight   int `env:"DISPLAY_OPTION_HEIGHT" default:"100" min:"50" max:"200" step:"25"`
	EnrichHeight   int `env:"DISPLAY_ENRICH_HEIGHT" default:"100" min:"50" max:"200" step:"25"`
	LabelsHeight   int `env:"DISPLAY_LABELS_HEIGHT" default:"100" min:"50" max:"200" step:"25"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
