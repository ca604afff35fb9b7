// Package templater turns channel URL templates into playable URLs by
// substituting the {server} and {timestamp} placeholders.
package templater

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Recognized placeholders
const (
	PlaceholderServer    = "{server}"
	PlaceholderTimestamp = "{timestamp}"
)

// Timestamps render as YYYYMMDDTHHMMSS.00Z in UTC. The ".00" is fixed text
// appended after formatting; in a Go layout it would mean centiseconds.
const (
	TimestampLayout = "20060102T150405"
	TimestampSuffix = ".00Z"
)

// Templater resolves URL templates. The zero value is not usable; use New.
type Templater struct {
	now  func() time.Time
	pick func(n int) int
}

// New creates a templater backed by the system clock and math/rand/v2
func New() *Templater {
	return &Templater{
		now:  time.Now,
		pick: rand.IntN,
	}
}

// NewWithClock creates a templater with a fixed clock and server picker
func NewWithClock(now func() time.Time, pick func(n int) int) *Templater {
	t := New()
	if now != nil {
		t.now = now
	}
	if pick != nil {
		t.pick = pick
	}
	return t
}

// Generate returns a concrete URL for template.
// With an empty server list the {server} placeholder is left in place.
func (t *Templater) Generate(template string, servers []string) string {
	url := template
	if strings.Contains(url, PlaceholderServer) && len(servers) > 0 {
		url = strings.ReplaceAll(url, PlaceholderServer, servers[t.pick(len(servers))])
	}
	if strings.Contains(url, PlaceholderTimestamp) {
		url = strings.ReplaceAll(url, PlaceholderTimestamp, FormatTimestamp(t.now()))
	}
	return url
}

// FormatTimestamp formats ts in UTC, dropping sub-second precision
func FormatTimestamp(ts time.Time) string {
	return ts.UTC().Format(TimestampLayout) + TimestampSuffix
}

// ParseTimestamp parses a value produced by FormatTimestamp
func ParseTimestamp(value string) (time.Time, error) {
	trimmed, ok := strings.CutSuffix(value, TimestampSuffix)
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp %q lacks %s suffix", value, TimestampSuffix)
	}
	return time.ParseInLocation(TimestampLayout, trimmed, time.UTC)
}

// Placeholders lists the recognized placeholders present in template
func Placeholders(template string) []string {
	var found []string
	for _, p := range []string{PlaceholderServer, PlaceholderTimestamp} {
		if strings.Contains(template, p) {
			found = append(found, p)
		}
	}
	return found
}

var defaultTemplater = New()

// Generate resolves template with the default templater
func Generate(template string, servers []string) string {
	return defaultTemplater.Generate(template, servers)
}
