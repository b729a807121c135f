// Package timeparse interprets user-supplied time bounds for export
// filtering. Inputs arrive from CLI flags and HTTP query parameters and
// are always treated as UTC.
package timeparse

import (
	"fmt"
	"strconv"
	"time"
)

// Accepted datetime layouts, tried in order.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse converts s to a UTC time. It accepts the datetime layouts above
// as well as a bare unix-seconds integer.
func Parse(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q: use YYYY-MM-DD [HH:MM[:SS]] or unix seconds", s)
}

// ParseEpoch converts s to unix seconds, clamped to the int32 timestamp
// domain of the record log.
func ParseEpoch(s string) (int32, error) {
	t, err := Parse(s)
	if err != nil {
		return 0, err
	}
	secs := t.Unix()
	if secs < 0 || secs > 1<<31-1 {
		return 0, fmt.Errorf("datetime %q is outside the log's timestamp range", s)
	}
	return int32(secs), nil
}
