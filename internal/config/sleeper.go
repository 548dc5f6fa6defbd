package config

import "time"

// SleeperConfig controls how we talk to the Sleeper API.
type SleeperConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// ResilienceConfig holds the opt-in provider wrappers. Zero values disable them.
type ResilienceConfig struct {
	RetryAttempts int
	RetryBackoff  time.Duration
	MinInterval   time.Duration
}

func loadSleeper() SleeperConfig {
	return SleeperConfig{
		BaseURL:   envOrDefault(envSleeperBaseURL, defaultSleeperBaseURL),
		Timeout:   durationEnvOrDefault(envSleeperTimeout, DefaultSleeperTimeout),
		UserAgent: envOrDefault(envSleeperUserAgent, defaultSleeperUserAgent),
	}
}

func loadResilience() ResilienceConfig {
	return ResilienceConfig{
		RetryAttempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempts, 0),
		RetryBackoff:  durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		MinInterval:   switchDurationEnv(envMinInterval, defaultMinInterval),
	}
}

// RetryEnabled reports whether failed provider calls should be retried.
func (r ResilienceConfig) RetryEnabled() bool {
	return r.RetryAttempts > 1
}

// RateLimitEnabled reports whether provider calls should be paced.
func (r ResilienceConfig) RateLimitEnabled() bool {
	return r.MinInterval > 0
}
