// Package config provides centralized configuration management for the
// converter. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server  ServerConfig
	Fetch   FetchConfig
	Convert ConvertConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// MaxBodySize is the maximum accepted request body in bytes (default: 50MB)
	MaxBodySize int64 `env:"SERVER_MAX_BODY_SIZE" default:"52428800"`
}

// FetchConfig holds settings for retrieving remote contract documents.
type FetchConfig struct {
	// Timeout is the per-request timeout for remote fetches (default: 30s)
	Timeout time.Duration `env:"FETCH_TIMEOUT" default:"30s"`

	// MaxResponseSize caps the size of a fetched document in bytes (default: 50MB)
	MaxResponseSize int64 `env:"FETCH_MAX_RESPONSE_SIZE" default:"52428800"`

	// UserAgent is sent with outgoing fetch requests
	UserAgent string `env:"FETCH_USER_AGENT" default:"odcs-converter"`
}

// ConvertConfig holds conversion behavior settings.
type ConvertConfig struct {
	// DefaultFormat is the textual output format when none is given: json or yaml
	// Supports both CONVERT_DEFAULT_FORMAT and OUTPUT_FORMAT for compatibility
	DefaultFormat string `env:"CONVERT_DEFAULT_FORMAT" envAlt:"OUTPUT_FORMAT" default:"yaml"`

	// Strict makes validation failures fatal instead of advisory (default: false)
	Strict bool `env:"CONVERT_STRICT" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
