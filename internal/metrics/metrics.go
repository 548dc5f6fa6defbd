package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
	playersDecoded  int
}

// Recorder captures lightweight, in-memory metrics about provider operations and mirrors
// them to OpenTelemetry instruments when telemetry is enabled.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*operationStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*operationStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for an operation and stores the last observed latency.
// code is the error code of a failed attempt and is ignored when err is nil.
func (r *Recorder) RecordProviderAttempt(operation string, duration time.Duration, err error, code string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(operation)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(operation, duration, err, code)
	}
}

// RecordRateLimit tracks that an operation hit an upstream rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(operation string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(operation)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(operation, retryAfter)
	}
}

// RecordPlayersDecoded counts player records decoded from a directory download.
func (r *Recorder) RecordPlayersDecoded(sport string, count int) {
	if r == nil || count <= 0 {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(playersKey(sport))
	stats.playersDecoded += count
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPlayersDecoded(sport, count)
	}
}

// ProviderCalls returns the total attempts recorded for an operation.
func (r *Recorder) ProviderCalls(operation string) int {
	return r.Snapshot(operation).Calls
}

// ProviderErrors returns the total failed attempts recorded for an operation.
func (r *Recorder) ProviderErrors(operation string) int {
	return r.Snapshot(operation).Errors
}

// RateLimitHits returns the number of rate limit events seen for an operation.
func (r *Recorder) RateLimitHits(operation string) int {
	return r.Snapshot(operation).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for an operation.
func (r *Recorder) LastRetryAfter(operation string) time.Duration {
	return r.Snapshot(operation).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for an operation.
func (r *Recorder) LastCallLatency(operation string) time.Duration {
	return r.Snapshot(operation).LastCallLatency
}

// PlayersDecoded returns the number of players decoded for a sport.
func (r *Recorder) PlayersDecoded(sport string) int {
	return r.Snapshot(playersKey(sport)).PlayersDecoded
}

// Snapshot is a copy of the current stats for an operation.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
	PlayersDecoded  int
}

func (r *Recorder) Snapshot(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[operation]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
		PlayersDecoded:  stats.playersDecoded,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) ensureStatsLocked(operation string) *operationStats {
	stats, ok := r.stats[operation]
	if !ok {
		stats = &operationStats{}
		r.stats[operation] = stats
	}
	return stats
}

func playersKey(sport string) string {
	return "players:" + sport
}
