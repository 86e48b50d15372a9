package capturetime

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var naiveLayouts = []string{
	"2006:01:02 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseNaive parses the wall-clock datetime formats cameras write
// (YYYY:MM:DD HH:MM:SS with optional fractional seconds). The returned time
// carries no timezone meaning; it is pinned to UTC only as a container.
func parseNaive(s string) (time.Time, bool) {
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseUTC parses strings that denote an absolute UTC instant: the GPS tag
// convention "YYYY:MM:DD HH:MM:SSZ" or a plain RFC 3339 timestamp.
func parseUTC(s string) (time.Time, bool) {
	if trimmed, ok := strings.CutSuffix(s, "Z"); ok {
		if t, found := parseNaive(trimmed); found {
			return t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

var offsetLayouts = []string{
	"2006:01:02 15:04:05-07:00",
	"2006:01:02 15:04:05-0700",
	time.RFC3339,
}

// parseWithOffset parses datetimes that embed their own UTC offset, as the
// filesystem tags (FileModifyDate etc.) usually do. A bare value with no
// offset is accepted too and read as UTC, the common container convention.
func parseWithOffset(s string) (time.Time, bool) {
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return parseNaive(s)
}

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)

// parseOffset parses an offset tag value ("+02:00", "-0500", "Z") into
// seconds east of UTC plus the original spelling.
func parseOffset(s string) (int, string, bool) {
	if s == "Z" {
		return 0, "Z", true
	}
	caps := offsetPattern.FindStringSubmatch(s)
	if caps == nil {
		return 0, "", false
	}
	hours := int(caps[2][0]-'0')*10 + int(caps[2][1]-'0')
	minutes := int(caps[3][0]-'0')*10 + int(caps[3][1]-'0')
	if hours > 14 || minutes > 59 {
		return 0, "", false
	}
	secs := hours*3600 + minutes*60
	if caps[1] == "-" {
		secs = -secs
	}
	return secs, s, true
}

// subsecNanos converts a bare subsecond counter tag ("123" meaning .123s)
// into nanoseconds, scaling by the number of digits present.
func subsecNanos(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 9 {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	for i := len(s); i < 9; i++ {
		n *= 10
	}
	return n, true
}

// offsetName renders seconds east of UTC in the "+02:00" spelling.
func offsetName(secs int) string {
	sign := "+"
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	return fmt.Sprintf("%s%02d:%02d", sign, secs/3600, secs%3600/60)
}

// wallClockIn reinterprets the wall-clock fields of t in loc.
func wallClockIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
