package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Engine.validate(),
		c.Store.validate(),
		c.Intent.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (e *EngineConfig) validate() error {
	var errs []error

	if e.ConfidenceThreshold < 0 || e.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("engine.confidence_threshold must be in [0, 1], got %f", e.ConfidenceThreshold))
	}
	if e.ToolTimeout <= 0 {
		errs = append(errs, errors.New("engine.tool_timeout must be positive"))
	}
	if e.DefaultUnit == "" {
		errs = append(errs, errors.New("engine.default_unit must not be empty"))
	}
	if e.MinHebrewRatio <= 0 || e.MinHebrewRatio > 1 {
		errs = append(errs, fmt.Errorf("engine.min_hebrew_ratio must be in (0, 1], got %f", e.MinHebrewRatio))
	}
	if e.SummaryWorkers < 1 {
		errs = append(errs, fmt.Errorf("engine.summary_workers must be >= 1, got %d", e.SummaryWorkers))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	var errs []error

	if s.Path == "" {
		errs = append(errs, errors.New("store.path must not be empty"))
	}
	if s.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("store.max_open_conns must be >= 1, got %d", s.MaxOpenConns))
	}
	if s.BusyTimeout <= 0 {
		errs = append(errs, errors.New("store.busy_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (i *IntentConfig) validate() error {
	var errs []error

	if !i.Mock {
		if i.APIKey == "" {
			errs = append(errs, errors.New("intent.api_key must not be empty unless intent.mock is enabled"))
		}
		if i.Model == "" {
			errs = append(errs, errors.New("intent.model must not be empty"))
		}
	}
	if i.Temperature < 0 || i.Temperature > 2 {
		errs = append(errs, fmt.Errorf("intent.temperature must be in [0, 2], got %f", i.Temperature))
	}
	if i.MaxTokens < 1 {
		errs = append(errs, fmt.Errorf("intent.max_tokens must be >= 1, got %d", i.MaxTokens))
	}

	return errors.Join(append(errs, i.Client.validate())...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, errors.New("intent.client.base_url must not be empty"))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("intent.client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("intent.client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("intent.client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("intent.client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
