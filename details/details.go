// Package details extracts per-field capture and file facts from a tag
// mapping. Every field is independently optional and independently sourced;
// a malformed value is omitted, never an error. Only the structural fields
// a file needs to be analyzable at all (dimensions, MIME type, size) are
// required.
package details

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/photoatlas/mediameta/tagmap"
)

// ErrMissingTag is reported when an essential structural tag is entirely
// absent from every candidate source. Wrapped errors name the field.
var ErrMissingTag = errors.New("essential metadata tag missing")

type FileMetadata struct {
	Width       int64    `json:"width"`
	Height      int64    `json:"height"`
	MIMEType    string   `json:"mime_type"`
	SizeBytes   int64    `json:"size_bytes"`
	Duration    *float64 `json:"duration,omitempty"`
	Orientation *int64   `json:"orientation,omitempty"`
}

type CaptureDetails struct {
	ISO          *int64   `json:"iso,omitempty"`
	ExposureTime *float64 `json:"exposure_time,omitempty"`
	Aperture     *float64 `json:"aperture,omitempty"`
	FocalLength  *float64 `json:"focal_length,omitempty"`
	CameraMake   string   `json:"camera_make,omitempty"`
	CameraModel  string   `json:"camera_model,omitempty"`
	LensModel    string   `json:"lens_model,omitempty"`
}

// Preference order per field: pixel dimensions over nominal image dimensions
// over video track dimensions.
var (
	widthSources  = []string{"ImageWidth", "ExifImageWidth", "SourceImageWidth"}
	heightSources = []string{"ImageHeight", "ExifImageHeight", "SourceImageHeight"}
)

func Extract(m tagmap.Mapping) (*FileMetadata, *CaptureDetails, error) {
	width, ok := firstInt(m, widthSources)
	if !ok {
		return nil, nil, fmt.Errorf("%w: ImageWidth", ErrMissingTag)
	}
	height, ok := firstInt(m, heightSources)
	if !ok {
		return nil, nil, fmt.Errorf("%w: ImageHeight", ErrMissingTag)
	}
	mime, ok := m.Text("MIMEType")
	if !ok || mime == "" {
		return nil, nil, fmt.Errorf("%w: MIMEType", ErrMissingTag)
	}
	size, ok := m.Int("FileSize")
	if !ok {
		return nil, nil, fmt.Errorf("%w: FileSize", ErrMissingTag)
	}

	fm := &FileMetadata{
		Width:       width,
		Height:      height,
		MIMEType:    mime,
		SizeBytes:   size,
		Duration:    duration(m),
		Orientation: optInt(m, "Orientation"),
	}

	cd := &CaptureDetails{
		ISO:          optInt(m, "ISO"),
		ExposureTime: exposureTime(m),
		Aperture:     firstFloat(m, "Aperture", "FNumber"),
		FocalLength:  firstFloat(m, "FocalLengthIn35mmFormat", "FocalLength"),
		CameraMake:   optText(m, "Make"),
		CameraModel:  optText(m, "Model"),
		LensModel:    firstText(m, "LensModel", "LensID", "Lens"),
	}
	return fm, cd, nil
}

func firstInt(m tagmap.Mapping, keys []string) (int64, bool) {
	for _, key := range keys {
		if n, ok := m.Int(key); ok {
			return n, true
		}
	}
	return 0, false
}

func firstFloat(m tagmap.Mapping, keys ...string) *float64 {
	for _, key := range keys {
		if f, ok := m.Float(key); ok {
			return &f
		}
	}
	return nil
}

func firstText(m tagmap.Mapping, keys ...string) string {
	for _, key := range keys {
		if s, ok := m.Text(key); ok && s != "" {
			return s
		}
	}
	return ""
}

func optInt(m tagmap.Mapping, key string) *int64 {
	if n, ok := m.Int(key); ok {
		return &n
	}
	return nil
}

func optText(m tagmap.Mapping, key string) string {
	s, _ := m.Text(key)
	return s
}

// duration reads the Duration tag as float seconds or as an "HH:MM:SS[.fff]"
// clock string, the form some containers report.
func duration(m tagmap.Mapping) *float64 {
	if f, ok := m.Float("Duration"); ok {
		return &f
	}
	s, ok := m.Text("Duration")
	if !ok {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil
		}
		vals[i] = f
	}
	total := vals[0]*3600 + vals[1]*60 + vals[2]
	return &total
}

// exposureTime accepts float seconds or the "1/250" fraction spelling.
func exposureTime(m tagmap.Mapping) *float64 {
	if f, ok := m.Float("ExposureTime"); ok {
		return &f
	}
	s, ok := m.Text("ExposureTime")
	if !ok {
		return nil
	}
	num, den, found := strings.Cut(s, "/")
	if !found {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
		return nil
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return nil
	}
	f := n / d
	return &f
}
