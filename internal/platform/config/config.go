// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Engine    EngineConfig    `koanf:"engine"`
	Store     StoreConfig     `koanf:"store"`
	Intent    IntentConfig    `koanf:"intent"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// EngineConfig holds the command engine's policy knobs: the confidence gate,
// per-tool-call timeout, duplicate/merge behavior, and name validation.
type EngineConfig struct {
	ConfidenceThreshold float64       `koanf:"confidence_threshold"`
	ToolTimeout         time.Duration `koanf:"tool_timeout"`
	AllowDuplicateItems bool          `koanf:"allow_duplicate_items"`
	AutoMergeSimilar    bool          `koanf:"auto_merge_similar"`
	RemoveMarksBought   bool          `koanf:"remove_marks_bought"`
	DefaultUnit         string        `koanf:"default_unit"`
	MinHebrewRatio      float64       `koanf:"min_hebrew_ratio"`
	SummaryWorkers      int           `koanf:"summary_workers"`
}

// StoreConfig holds SQLite storage settings.
type StoreConfig struct {
	Path            string        `koanf:"path"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	BusyTimeout     time.Duration `koanf:"busy_timeout"`
}

// IntentConfig holds intent source settings: the upstream language-model API
// plus the deterministic mock mode used in development and tests. Client
// carries the outbound HTTP policy (retry, circuit breaker, rate limit).
type IntentConfig struct {
	Mock        bool         `koanf:"mock"`
	APIKey      string       `koanf:"api_key"`
	Model       string       `koanf:"model"`
	Temperature float64      `koanf:"temperature"`
	MaxTokens   int          `koanf:"max_tokens"`
	Client      ClientConfig `koanf:"client"`
}

// ClientConfig holds downstream HTTP client settings.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds outbound rate limiting settings. A zero
// RequestsPerSecond disables rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
