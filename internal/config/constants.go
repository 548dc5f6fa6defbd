package config

import "time"

// DefaultSleeperTimeout bounds one Sleeper call when SLEEPER_TIMEOUT is unset.
const DefaultSleeperTimeout = 30 * time.Second

const (
	envPort         = "PORT"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envSleeperBaseURL   = "SLEEPER_BASE_URL"
	envSleeperTimeout   = "SLEEPER_TIMEOUT"
	envSleeperUserAgent = "SLEEPER_USER_AGENT"
	envRetryAttempts    = "SLEEPER_RETRY_ATTEMPTS"
	envRetryBackoff     = "SLEEPER_RETRY_BACKOFF"
	envMinInterval      = "SLEEPER_MIN_INTERVAL"

	defaultPort        = "4000"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultMetricsPort = "9090"
	defaultServiceName = "fantasy-data-service"

	defaultSleeperBaseURL   = "https://api.sleeper.app/v1"
	defaultSleeperUserAgent = "fantasy-data-service"
	// Retries and pacing are opt-in; zero leaves the provider unwrapped.
	defaultRetryAttempts = 0
	defaultRetryBackoff  = 200 * time.Millisecond
	defaultMinInterval   = time.Duration(0)
)
