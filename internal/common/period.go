package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatPeriod renders a duration as a human-readable period with
// whole-second resolution, e.g. "5 seconds" or "1 minute, 5 seconds".
func FormatPeriod(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds < 0 {
		seconds = -seconds
	}

	units := []struct {
		name    string
		seconds int64
	}{
		{"day", 86400},
		{"hour", 3600},
		{"minute", 60},
		{"second", 1},
	}

	parts := []string{}
	for _, unit := range units {
		n := seconds / unit.seconds
		seconds -= n * unit.seconds
		if n == 0 {
			continue
		}
		name := unit.name
		if n != 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}
	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, ", ")
}
