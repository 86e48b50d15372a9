package capturetime

import (
	"regexp"
	"strconv"
	"time"

	"github.com/photoatlas/mediameta/tagmap"
)

// Components are the reconciliation inputs pulled out of a tag mapping:
// the best wall-clock capture time, a GPS-derived absolute UTC instant, an
// explicit UTC-offset hint, and the filesystem fallback time. Each is
// independently optional; unparseable tag values are dropped, not errors.
type Components struct {
	Naive    *NaiveComponent
	GPSUTC   *UTCComponent
	Offset   *OffsetComponent
	FileTime *FileComponent
}

// NaiveComponent is a local wall-clock capture time with no timezone context.
type NaiveComponent struct {
	Value  time.Time
	Source string
}

// UTCComponent is an absolute UTC instant, authoritative for absolute time
// but not for local wall-clock display.
type UTCComponent struct {
	Value  time.Time
	Source string
}

// OffsetComponent is an explicit UTC-offset tag paired with the capture time.
type OffsetComponent struct {
	Seconds int
	Text    string
	Source  string
}

// FileComponent is a filesystem timestamp carrying its own offset, usable
// only as a last resort or to guess an offset for a naive capture time.
type FileComponent struct {
	Value  time.Time
	Source string
}

// Tag precedence, most trustworthy first. Sub-second variants outrank their
// plain counterparts; digitization tags rank below original-capture tags
// because they may reflect file processing time.
var photoNaiveSources = []string{
	"SubSecDateTimeOriginal",
	"SubSecCreateDate",
	"SubSecTimeDigitized",
	"DateTimeOriginal",
	"CreateDate",
	"DateTimeDigitized",
	"SubSecModifyDate",
	"ModifyDate",
}

// Video containers write CreateDate first; DateTimeOriginal is rare there.
var videoNaiveSources = []string{
	"CreateDate",
	"DateTimeOriginal",
	"MediaCreateDate",
	"TrackCreateDate",
	"ModifyDate",
}

// Companion numeric tags holding sub-second counters for the plain tags.
var subsecCompanions = map[string]string{
	"DateTimeOriginal": "SubSecTimeOriginal",
	"CreateDate":       "SubSecTimeDigitized",
	"ModifyDate":       "SubSecTime",
}

var offsetSources = []string{
	"OffsetTimeOriginal",
	"OffsetTimeDigitized",
	"OffsetTime",
	"TimeZone",
}

var fileTimeSources = []string{
	"FileModifyDate",
	"FileCreateDate",
	"FileAccessDate",
}

// Extract parses every recognized time-bearing tag into Components. The
// result depends only on the mapping contents and the media kind, never on
// map iteration order.
func Extract(m tagmap.Mapping, kind MediaKind) Components {
	c := Components{
		Naive:    bestNaive(m, kind),
		GPSUTC:   gpsUTC(m),
		Offset:   explicitOffset(m),
		FileTime: fileTime(m),
	}
	if c.Naive == nil {
		c.Naive = naiveFromFilename(m)
	}
	return c
}

// Candidates lists every parseable time candidate in priority order, for
// callers that want to inspect the evidence rather than the verdict.
func Candidates(m tagmap.Mapping, kind MediaKind) []Candidate {
	var out []Candidate
	rank := 0
	for _, key := range naiveSources(kind) {
		if s, ok := m.Text(key); ok {
			if t, ok := parseNaive(s); ok {
				out = append(out, Candidate{Source: key, Value: t, Rank: rank})
			}
		}
		rank++
	}
	if u := gpsUTC(m); u != nil {
		zero := 0
		out = append(out, Candidate{Source: u.Source, Value: u.Value, OffsetSeconds: &zero, Rank: rank})
	}
	rank++
	if n := naiveFromFilename(m); n != nil {
		out = append(out, Candidate{Source: n.Source, Value: n.Value, Rank: rank})
	}
	rank++
	for _, key := range fileTimeSources {
		if s, ok := m.Text(key); ok {
			if t, ok := parseWithOffset(s); ok {
				_, off := t.Zone()
				out = append(out, Candidate{Source: key, Value: t, OffsetSeconds: &off, Rank: rank})
			}
		}
		rank++
	}
	return out
}

func naiveSources(kind MediaKind) []string {
	if kind == KindVideo {
		return videoNaiveSources
	}
	return photoNaiveSources
}

func bestNaive(m tagmap.Mapping, kind MediaKind) *NaiveComponent {
	for _, key := range naiveSources(kind) {
		s, ok := m.Text(key)
		if !ok {
			continue
		}
		t, ok := parseNaive(s)
		if !ok {
			continue
		}
		if t.Nanosecond() == 0 {
			t = addCompanionSubseconds(m, key, t)
		}
		return &NaiveComponent{Value: t, Source: key}
	}
	return nil
}

func addCompanionSubseconds(m tagmap.Mapping, key string, t time.Time) time.Time {
	companion, ok := subsecCompanions[key]
	if !ok {
		return t
	}
	var raw string
	if s, ok := m.Text(companion); ok {
		raw = s
	} else if n, ok := m.Int(companion); ok {
		raw = strconv.FormatInt(n, 10)
	} else {
		return t
	}
	if nanos, ok := subsecNanos(raw); ok && nanos != 0 {
		return t.Add(time.Duration(nanos) * time.Nanosecond)
	}
	return t
}

func gpsUTC(m tagmap.Mapping) *UTCComponent {
	if s, ok := m.Text("GPSDateTime"); ok {
		if t, ok := parseUTC(s); ok {
			return &UTCComponent{Value: t, Source: "GPSDateTime"}
		}
	}
	date, dok := m.Text("GPSDateStamp")
	clock, tok := m.Text("GPSTimeStamp")
	if dok && tok {
		if t, ok := parseUTC(date + " " + clock + "Z"); ok {
			return &UTCComponent{Value: t, Source: "GPSDateStamp/GPSTimeStamp"}
		}
	}
	return nil
}

func explicitOffset(m tagmap.Mapping) *OffsetComponent {
	for _, key := range offsetSources {
		if s, ok := m.Text(key); ok {
			if secs, text, ok := parseOffset(s); ok {
				return &OffsetComponent{Seconds: secs, Text: text, Source: key}
			}
		}
	}
	return nil
}

func fileTime(m tagmap.Mapping) *FileComponent {
	for _, key := range fileTimeSources {
		if s, ok := m.Text(key); ok {
			if t, ok := parseWithOffset(s); ok {
				return &FileComponent{Value: t, Source: key}
			}
		}
	}
	return nil
}

var (
	filenameCompact    = regexp.MustCompile(`(\d{8})_(\d{6})`)
	filenameHyphenated = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})_(\d{2}-\d{2}-\d{2})`)
	filenameUnixMillis = regexp.MustCompile(`^(\d{13})\.`)
)

// naiveFromFilename recovers a capture time from common camera filename
// conventions when no metadata tag yielded one.
func naiveFromFilename(m tagmap.Mapping) *NaiveComponent {
	name, ok := m.Text("FileName")
	if !ok {
		return nil
	}
	if caps := filenameCompact.FindStringSubmatch(name); caps != nil {
		if t, err := time.ParseInLocation("20060102150405", caps[1]+caps[2], time.UTC); err == nil {
			return &NaiveComponent{Value: t, Source: "FileName"}
		}
	}
	if caps := filenameHyphenated.FindStringSubmatch(name); caps != nil {
		if t, err := time.ParseInLocation("2006-01-02 15-04-05", caps[1]+" "+caps[2], time.UTC); err == nil {
			return &NaiveComponent{Value: t, Source: "FileName"}
		}
	}
	if caps := filenameUnixMillis.FindStringSubmatch(name); caps != nil {
		if ms, err := strconv.ParseInt(caps[1], 10, 64); err == nil {
			t := time.UnixMilli(ms).UTC()
			return &NaiveComponent{Value: t, Source: "FileName"}
		}
	}
	return nil
}
