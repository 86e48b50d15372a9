// Package mediameta reconciles the heterogeneous, vendor-specific metadata
// tags of a photo or video into one canonical structured description of
// when, where, and what kind of capture it is.
//
// The package is a pure function of an already-extracted tag mapping: it
// reads no files, runs no subprocesses, makes no network calls and persists
// nothing. Independent analyses may run fully in parallel.
package mediameta

import (
	"strings"
	"time"

	"github.com/photoatlas/mediameta/capturetime"
	"github.com/photoatlas/mediameta/details"
	"github.com/photoatlas/mediameta/gps"
	"github.com/photoatlas/mediameta/pano"
	"github.com/photoatlas/mediameta/tagmap"
	"github.com/photoatlas/mediameta/tags"
)

type MediaKind = capturetime.MediaKind

const (
	KindPhoto = capturetime.KindPhoto
	KindVideo = capturetime.KindVideo
)

// The two fatal error kinds. Everything else is best-effort omission of the
// individual field.
var (
	// ErrNoTimeSource: no time-bearing tag, including the filesystem
	// fallback, could be parsed.
	ErrNoTimeSource = capturetime.ErrNoTimeSource
	// ErrMissingTag: an essential structural tag (dimensions, MIME type,
	// file size) is absent from every candidate source.
	ErrMissingTag = details.ErrMissingTag
)

// AnalyzeResult is the canonical description of one capture. It is built
// once per Resolve call and never mutated afterwards.
type AnalyzeResult struct {
	File    details.FileMetadata   `json:"file"`
	Capture details.CaptureDetails `json:"capture"`
	Time    capturetime.TimeInfo   `json:"time"`
	Tags    tags.TagData           `json:"tags"`
	Pano    pano.Info              `json:"pano"`
	GPS     *gps.Info              `json:"gps,omitempty"`
}

// Analyzer holds the injected collaborators and tunables. The zero value
// works: without Zones, timezone attribution falls back from coordinates to
// the guessed paths.
type Analyzer struct {
	// Zones resolves coordinates to an IANA timezone name, e.g.
	// *gps.TimezoneFinder. Consulted at most once per Resolve call.
	Zones capturetime.TimezoneResolver

	// ConfirmTolerance bounds the GPS-vs-local-clock difference accepted as
	// corroboration; OverrideWindow bounds how far a GPS timestamp may sit
	// from the anchor and still pin the UTC value. Zero means the defaults.
	ConfirmTolerance time.Duration
	OverrideWindow   time.Duration
}

func New(zones capturetime.TimezoneResolver) *Analyzer {
	return &Analyzer{Zones: zones}
}

// Resolve reconciles the mapping into an AnalyzeResult. It fails only with
// ErrNoTimeSource or ErrMissingTag; every individual tag-parse failure is
// absorbed as "this source is unavailable". Time is resolved first: when it
// fails, no partial tag data is computed.
func (a *Analyzer) Resolve(m tagmap.Mapping, kind MediaKind) (*AnalyzeResult, error) {
	resolver := capturetime.Resolver{
		Zones:            a.Zones,
		ConfirmTolerance: a.ConfirmTolerance,
		OverrideWindow:   a.OverrideWindow,
	}
	timeInfo, err := resolver.Resolve(m, kind)
	if err != nil {
		return nil, err
	}

	fileMeta, capture, err := details.Extract(m)
	if err != nil {
		return nil, err
	}

	return &AnalyzeResult{
		File:    *fileMeta,
		Capture: *capture,
		Time:    *timeInfo,
		Tags:    tags.Extract(m),
		Pano:    pano.Get(m),
		GPS:     gps.FromTags(m),
	}, nil
}

// DetectKind guesses the media kind from the MIMEType tag, defaulting to
// photo when the tag is absent.
func DetectKind(m tagmap.Mapping) MediaKind {
	if mime, ok := m.Text("MIMEType"); ok && strings.HasPrefix(mime, "video/") {
		return KindVideo
	}
	return KindPhoto
}
