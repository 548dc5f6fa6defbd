package config

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	Log        LogConfig
	Sleeper    SleeperConfig
	Resilience ResilienceConfig
	Metrics    MetricsConfig
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Sleeper:    loadSleeper(),
		Resilience: loadResilience(),
		Metrics:    loadMetrics(),
	}
}
