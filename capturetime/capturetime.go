// Package capturetime reconciles the time-related tags of a media file into
// one authoritative UTC instant plus timezone attribution.
package capturetime

import (
	"errors"
	"time"
)

// MediaKind selects the tag precedence used for the capture timestamp:
// still cameras write DateTimeOriginal first, video containers CreateDate.
type MediaKind int

const (
	KindPhoto MediaKind = iota
	KindVideo
)

// ErrNoTimeSource is reported only when no time-bearing tag of any kind,
// including the filesystem fallback tags, could be parsed.
var ErrNoTimeSource = errors.New("no usable time source in metadata")

type Confidence string

const (
	// ConfidenceExplicit: the timezone came from an explicit offset or
	// timezone tag written by the camera.
	ConfidenceExplicit Confidence = "explicit"
	// ConfidenceDerived: the timezone or UTC instant was derived from GPS
	// data (coordinates or a GPS timestamp).
	ConfidenceDerived Confidence = "derived"
	// ConfidenceGuessed: a best-effort single interpretation with no real
	// timezone evidence.
	ConfidenceGuessed Confidence = "guessed"
)

// TimezoneInfo describes the timezone attributed to the local timestamp.
// Name is an IANA name, a fixed offset string like "+02:00", or "UTC".
type TimezoneInfo struct {
	Name          string `json:"name"`
	OffsetSeconds int    `json:"offset_seconds"`
	Source        string `json:"source"`
}

type SourceDetails struct {
	TimeSource string     `json:"time_source"`
	Confidence Confidence `json:"confidence"`
}

// TimeInfo is the resolved result. If DatetimeUTC is set, DatetimeLocal and
// Timezone are either both set or both unset, never inconsistent.
type TimeInfo struct {
	DatetimeUTC   *time.Time    `json:"datetime_utc,omitempty"`
	DatetimeLocal *time.Time    `json:"datetime_local,omitempty"`
	Timezone      *TimezoneInfo `json:"timezone,omitempty"`
	Source        SourceDetails `json:"source"`
}

// TimezoneResolver maps coordinates to an IANA timezone name. It is an
// injected collaborator (typically an offline lookup table) and is invoked
// at most once per analysis.
type TimezoneResolver interface {
	TimezoneName(lat, lon float64) (string, bool)
}

// Candidate is one parsed time-bearing tag. Candidates are transient: they
// exist only while a single analysis call runs.
type Candidate struct {
	Source string
	Value  time.Time
	// OffsetSeconds is set only when the tag itself encoded a UTC offset.
	OffsetSeconds *int
	Rank          int
}
