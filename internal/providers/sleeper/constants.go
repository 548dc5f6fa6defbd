package sleeper

import "time"

// Name identifies this provider in logs and metrics.
const Name = "sleeper"

const (
	defaultBaseURL   = "https://api.sleeper.app/v1"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "fantasy-data-service"

	// playerStreamBuffer is the read buffer for streaming the player directory.
	playerStreamBuffer = 32 * 1024
	// bodyBuffer is the read buffer for every other response body.
	bodyBuffer = 4 * 1024
)
