package timeutil

import "time"

// TimestampLayout is the response envelope timestamp format: local date-time, no zone.
const TimestampLayout = "2006-01-02T15:04:05"

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a TimestampLayout value as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, value, time.UTC)
}
