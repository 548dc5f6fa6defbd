package server

import (
	"time"

	"github.com/preston-bernstein/fantasy-data-service/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	idleTimeout       = 60 * time.Second
	metricsTimeout    = 10 * time.Second

	// encodeSlack covers writing the envelope once the upstream call has returned.
	encodeSlack = 10 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// serverTimeouts bounds one listener.
type serverTimeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

// apiTimeouts sizes the write deadline to the slowest request the API can legitimately
// serve: every retry attempt of a Sleeper call running to its timeout, the backoff between
// them, then encoding. The full player directory is the route that gets close.
func apiTimeouts(cfg config.Config) serverTimeouts {
	upstream := cfg.Sleeper.Timeout
	if upstream <= 0 {
		upstream = config.DefaultSleeperTimeout
	}
	attempts := 1
	var backoff time.Duration
	if cfg.Resilience.RetryEnabled() {
		attempts = cfg.Resilience.RetryAttempts
		backoff = time.Duration(attempts-1) * cfg.Resilience.RetryBackoff
	}
	return serverTimeouts{
		ReadHeader: readHeaderTimeout,
		Read:       readTimeout,
		Write:      time.Duration(attempts)*upstream + backoff + encodeSlack,
		Idle:       idleTimeout,
	}
}

func metricsTimeouts() serverTimeouts {
	return serverTimeouts{
		ReadHeader: readHeaderTimeout,
		Read:       metricsTimeout,
		Write:      metricsTimeout,
		Idle:       idleTimeout,
	}
}
