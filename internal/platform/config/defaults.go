package config

const (
	defaultServerPort = 8080

	defaultConfidenceThreshold = 0.6
	defaultMinHebrewRatio      = 0.7
	defaultMaxSummaryWorkers   = 4

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"engine.confidence_threshold":  defaultConfidenceThreshold,
		"engine.tool_timeout":          "5s",
		"engine.allow_duplicate_items": false,
		"engine.auto_merge_similar":    true,
		"engine.remove_marks_bought":   true,
		"engine.default_unit":          "יחידה",
		"engine.min_hebrew_ratio":      defaultMinHebrewRatio,
		"engine.summary_workers":       defaultMaxSummaryWorkers,

		"store.path":              "baskit.db",
		"store.max_open_conns":    10,
		"store.max_idle_conns":    5,
		"store.conn_max_lifetime": "5m",
		"store.busy_timeout":      "5s",

		"intent.mock":        false,
		"intent.model":       "gpt-4o-mini",
		"intent.temperature": 0.2,
		"intent.max_tokens":  512,

		"intent.client.base_url":                        "https://api.openai.com/v1",
		"intent.client.timeout":                         "30s",
		"intent.client.retry.max_attempts":              defaultRetryMaxAttempts,
		"intent.client.retry.initial_interval":          "100ms",
		"intent.client.retry.max_interval":              "10s",
		"intent.client.retry.multiplier":                defaultRetryMultiplier,
		"intent.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"intent.client.circuit_breaker.timeout":         "30s",
		"intent.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"intent.client.rate_limit.requests_per_second":  0,
		"intent.client.rate_limit.burst_size":           1,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
