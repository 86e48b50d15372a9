package capturetime

import (
	"testing"
	"time"
)

func TestParseNaive(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"2024:01:01 10:30:00", "2024-01-01T10:30:00Z", true},
		{"2024-02-02 11:00:00", "2024-02-02T11:00:00Z", true},
		{"2024-02-02T11:00:00", "2024-02-02T11:00:00Z", true},
		{"2024:03:03 12:00:00.123", "2024-03-03T12:00:00.123Z", true},
		{"not a date", "", false},
		{"2024/01/01 10:30:00", "", false},
	}
	for _, tt := range tests {
		got, ok := parseNaive(tt.input)
		if ok != tt.ok {
			t.Errorf("parseNaive(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02T15:04:05.999Z07:00") != tt.expected {
			t.Errorf("parseNaive(%q) = %v, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestParseUTC(t *testing.T) {
	got, ok := parseUTC("2024:05:05 10:00:00Z")
	if !ok || !got.Equal(time.Date(2024, 5, 5, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("GPS format: got %v, %v", got, ok)
	}

	got, ok = parseUTC("2024-06-06T11:22:33Z")
	if !ok || !got.Equal(time.Date(2024, 6, 6, 11, 22, 33, 0, time.UTC)) {
		t.Errorf("RFC3339 format: got %v, %v", got, ok)
	}

	if _, ok := parseUTC("2024:05:05 10:00:00"); ok {
		t.Error("value without Z should not parse as UTC")
	}
}

func TestParseWithOffset(t *testing.T) {
	got, ok := parseWithOffset("2024:08:08 10:00:00+02:00")
	if !ok {
		t.Fatal("exif offset format should parse")
	}
	if _, off := got.Zone(); off != 2*3600 {
		t.Errorf("offset = %d, expected +2h", off)
	}

	got, ok = parseWithOffset("2024-09-09T14:30:00-05:00")
	if !ok {
		t.Fatal("RFC3339 should parse")
	}
	if _, off := got.Zone(); off != -5*3600 {
		t.Errorf("offset = %d, expected -5h", off)
	}

	// No offset at all reads as UTC.
	got, ok = parseWithOffset("2022-01-01T00:00:00")
	if !ok {
		t.Fatal("bare datetime should parse as UTC")
	}
	if _, off := got.Zone(); off != 0 {
		t.Errorf("bare datetime offset = %d, expected 0", off)
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		input string
		secs  int
		ok    bool
	}{
		{"+02:00", 2 * 3600, true},
		{"-0500", -5 * 3600, true},
		{"Z", 0, true},
		{"+14:00", 14 * 3600, true},
		{"+15:00", 0, false},
		{"+02:60", 0, false},
		{"invalid", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		secs, _, ok := parseOffset(tt.input)
		if ok != tt.ok || secs != tt.secs {
			t.Errorf("parseOffset(%q) = %d, %v, expected %d, %v", tt.input, secs, ok, tt.secs, tt.ok)
		}
	}
}

func TestSubsecNanos(t *testing.T) {
	tests := []struct {
		input string
		nanos int
		ok    bool
	}{
		{"123", 123_000_000, true},
		{"7", 700_000_000, true},
		{"123456", 123_456_000, true},
		{"0", 0, true},
		{"1234567890", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		nanos, ok := subsecNanos(tt.input)
		if ok != tt.ok || nanos != tt.nanos {
			t.Errorf("subsecNanos(%q) = %d, %v, expected %d, %v", tt.input, nanos, ok, tt.nanos, tt.ok)
		}
	}
}

func TestOffsetName(t *testing.T) {
	tests := []struct {
		secs     int
		expected string
	}{
		{2 * 3600, "+02:00"},
		{-5 * 3600, "-05:00"},
		{0, "+00:00"},
		{5*3600 + 30*60, "+05:30"},
		{-(9*3600 + 30*60), "-09:30"},
	}
	for _, tt := range tests {
		if got := offsetName(tt.secs); got != tt.expected {
			t.Errorf("offsetName(%d) = %q, expected %q", tt.secs, got, tt.expected)
		}
	}
}
