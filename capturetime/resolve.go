package capturetime

import (
	"strings"
	"time"

	"github.com/photoatlas/mediameta/tagmap"
)

const (
	// Window within which a GPS timestamp is taken to corroborate a naive
	// capture time interpreted in a coordinate-resolved timezone. Tunable;
	// the few-seconds default absorbs camera clock rounding.
	defaultConfirmTolerance = 10 * time.Second

	// A GPS timestamp further than this from the anchor-derived UTC value
	// is assumed to describe a different event and is ignored for offset
	// derivation.
	defaultOverrideWindow = 24 * time.Hour
)

// Resolver reconciles extracted time components into one TimeInfo. The zero
// value works; Zones is optional and, when set, is consulted at most once
// per call.
type Resolver struct {
	Zones            TimezoneResolver
	ConfirmTolerance time.Duration
	OverrideWindow   time.Duration
}

// Resolve picks the highest-priority usable anchor and attributes a timezone
// to it. Timezone evidence is tried in order: explicit offset tag, named
// timezone tag, coordinate lookup, guessed offset from filesystem time, and
// finally a best-effort treat-as-UTC interpretation. It fails only when no
// time source of any kind exists.
func (r *Resolver) Resolve(m tagmap.Mapping, kind MediaKind) (*TimeInfo, error) {
	c := Extract(m, kind)

	var zoneLoc *time.Location
	var zoneName string
	if lat, lon, ok := coordinates(m); ok && r.Zones != nil {
		if name, found := r.Zones.TimezoneName(lat, lon); found {
			if loc, err := time.LoadLocation(name); err == nil {
				zoneLoc, zoneName = loc, name
			}
		}
	}

	if c.Naive != nil {
		// Explicit offset tag wins over everything, including GPS.
		if c.Offset != nil {
			zone := time.FixedZone(c.Offset.Text, c.Offset.Seconds)
			local := wallClockIn(c.Naive.Value, zone)
			utc := local.UTC()
			return &TimeInfo{
				DatetimeUTC:   &utc,
				DatetimeLocal: &local,
				Timezone: &TimezoneInfo{
					Name:          c.Offset.Text,
					OffsetSeconds: c.Offset.Seconds,
					Source:        c.Offset.Source,
				},
				Source: SourceDetails{TimeSource: c.Naive.Source, Confidence: ConfidenceExplicit},
			}, nil
		}

		if name, loc, ok := namedZone(m); ok {
			return zonedResult(c, loc, name, "TimeZone", ConfidenceExplicit, r.confirmTolerance()), nil
		}

		if zoneLoc != nil {
			return zonedResult(c, zoneLoc, zoneName, "coordinates", ConfidenceDerived, r.confirmTolerance()), nil
		}

		// No timezone evidence. A GPS absolute timestamp, when close enough
		// to the anchor, still pins UTC and yields the offset.
		if ti := gpsAdjusted(c.Naive, c.GPSUTC, r.overrideWindow()); ti != nil {
			return ti, nil
		}

		if c.FileTime != nil {
			_, off := c.FileTime.Value.Zone()
			name := offsetName(off)
			zone := time.FixedZone(name, off)
			local := wallClockIn(c.Naive.Value, zone)
			utc := local.UTC()
			return &TimeInfo{
				DatetimeUTC:   &utc,
				DatetimeLocal: &local,
				Timezone: &TimezoneInfo{
					Name:          name,
					OffsetSeconds: off,
					Source:        "guessed from " + c.FileTime.Source,
				},
				Source: SourceDetails{TimeSource: c.Naive.Source, Confidence: ConfidenceGuessed},
			}, nil
		}

		// Best-effort single interpretation: treat the anchor as already
		// UTC. Video containers conventionally store UTC here anyway.
		utc := c.Naive.Value
		local := utc
		return &TimeInfo{
			DatetimeUTC:   &utc,
			DatetimeLocal: &local,
			Timezone:      &TimezoneInfo{Name: "UTC", OffsetSeconds: 0, Source: "assumed"},
			Source:        SourceDetails{TimeSource: c.Naive.Source, Confidence: ConfidenceGuessed},
		}, nil
	}

	if c.GPSUTC != nil {
		utc := c.GPSUTC.Value
		info := &TimeInfo{
			DatetimeUTC: &utc,
			Source:      SourceDetails{TimeSource: c.GPSUTC.Source, Confidence: ConfidenceDerived},
		}
		if zoneLoc != nil {
			local := utc.In(zoneLoc)
			_, off := local.Zone()
			info.DatetimeLocal = &local
			info.Timezone = &TimezoneInfo{Name: zoneName, OffsetSeconds: off, Source: "coordinates"}
		} else {
			local := utc
			info.DatetimeLocal = &local
			info.Timezone = &TimezoneInfo{Name: "UTC", OffsetSeconds: 0, Source: c.GPSUTC.Source}
		}
		return info, nil
	}

	if c.FileTime != nil {
		local := c.FileTime.Value
		utc := local.UTC()
		_, off := local.Zone()
		return &TimeInfo{
			DatetimeUTC:   &utc,
			DatetimeLocal: &local,
			Timezone: &TimezoneInfo{
				Name:          offsetName(off),
				OffsetSeconds: off,
				Source:        c.FileTime.Source,
			},
			Source: SourceDetails{TimeSource: c.FileTime.Source, Confidence: ConfidenceGuessed},
		}, nil
	}

	return nil, ErrNoTimeSource
}

func (r *Resolver) confirmTolerance() time.Duration {
	if r.ConfirmTolerance > 0 {
		return r.ConfirmTolerance
	}
	return defaultConfirmTolerance
}

func (r *Resolver) overrideWindow() time.Duration {
	if r.OverrideWindow > 0 {
		return r.OverrideWindow
	}
	return defaultOverrideWindow
}

// zonedResult interprets the naive anchor in loc. A GPS timestamp within
// tolerance of that interpretation is preferred for the absolute UTC value,
// since it carries no clock drift.
func zonedResult(c Components, loc *time.Location, name, tzSource string, conf Confidence, tolerance time.Duration) *TimeInfo {
	local := wallClockIn(c.Naive.Value, loc)
	utc := local.UTC()
	_, off := local.Zone()
	source := tzSource
	if c.GPSUTC != nil && absDuration(c.GPSUTC.Value.Sub(utc)) <= tolerance {
		utc = c.GPSUTC.Value
		source = tzSource + " confirmed by " + c.GPSUTC.Source
	}
	return &TimeInfo{
		DatetimeUTC:   &utc,
		DatetimeLocal: &local,
		Timezone:      &TimezoneInfo{Name: name, OffsetSeconds: off, Source: source},
		Source:        SourceDetails{TimeSource: c.Naive.Source, Confidence: conf},
	}
}

// gpsAdjusted derives a fixed offset from the distance between the naive
// anchor and a GPS absolute timestamp. It never runs when an explicit offset
// tag is present.
func gpsAdjusted(naive *NaiveComponent, gps *UTCComponent, window time.Duration) *TimeInfo {
	if naive == nil || gps == nil {
		return nil
	}
	diff := naive.Value.Sub(gps.Value)
	if absDuration(diff) >= window {
		return nil
	}
	off := int(diff.Round(time.Minute).Seconds())
	name := offsetName(off)
	local := wallClockIn(naive.Value, time.FixedZone(name, off))
	utc := gps.Value
	return &TimeInfo{
		DatetimeUTC:   &utc,
		DatetimeLocal: &local,
		Timezone: &TimezoneInfo{
			Name:          name,
			OffsetSeconds: off,
			Source:        "derived from " + gps.Source,
		},
		Source: SourceDetails{TimeSource: naive.Source, Confidence: ConfidenceDerived},
	}
}

func coordinates(m tagmap.Mapping) (lat, lon float64, ok bool) {
	if lat, lon, ok = m["GPSPosition"].Coord(); ok {
		return lat, lon, true
	}
	lat, latOK := m.Float("GPSLatitude")
	lon, lonOK := m.Float("GPSLongitude")
	return lat, lon, latOK && lonOK
}

// namedZone recognizes an IANA zone name in the TimeZone tag. Plain offset
// spellings of that tag are handled by the explicit-offset path instead.
func namedZone(m tagmap.Mapping) (string, *time.Location, bool) {
	name, ok := m.Text("TimeZone")
	if !ok || (!strings.Contains(name, "/") && name != "UTC") {
		return "", nil, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return "", nil, false
	}
	return name, loc, true
}
