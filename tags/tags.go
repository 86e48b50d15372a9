// Package tags infers semantic capture tags (motion photo, HDR, burst,
// slow motion, ...) from vendor-specific metadata.
//
// Each tag has one named rule: a pure predicate over the mapping, written to
// tolerate vendor variation. Rules are independent of each other, so a new
// vendor signal extends exactly one rule and cannot disturb the rest. A tag
// whose source tags are all absent is false, never an error.
package tags

import (
	"strconv"
	"strings"

	"github.com/photoatlas/mediameta/pano"
	"github.com/photoatlas/mediameta/tagmap"
)

type TagData struct {
	IsMotionPhoto                    bool     `json:"is_motion_photo"`
	MotionPhotoPresentationTimestamp *int64   `json:"motion_photo_presentation_timestamp,omitempty"`
	IsNightSight                     bool     `json:"is_night_sight"`
	IsHDR                            bool     `json:"is_hdr"`
	IsBurst                          bool     `json:"is_burst"`
	BurstID                          string   `json:"burst_id,omitempty"`
	IsTimelapse                      bool     `json:"is_timelapse"`
	IsSlowmotion                     bool     `json:"is_slowmotion"`
	IsVideo                          bool     `json:"is_video"`
	CaptureFPS                       *float64 `json:"capture_fps,omitempty"`
	VideoFPS                         *float64 `json:"video_fps,omitempty"`
	UsePanoramaViewer                bool     `json:"use_panorama_viewer"`
}

func Extract(m tagmap.Mapping) TagData {
	videoFPS, captureFPS := frameRates(m)
	isBurst, burstID := burstInfo(m)

	return TagData{
		IsMotionPhoto:                    isMotionPhoto(m),
		MotionPhotoPresentationTimestamp: presentationTimestamp(m),
		IsNightSight:                     isNightSight(m),
		IsHDR:                            isHDR(m),
		IsBurst:                          isBurst,
		BurstID:                          burstID,
		IsTimelapse:                      isTimelapse(m, videoFPS),
		IsSlowmotion:                     isSlowmotion(captureFPS, videoFPS),
		IsVideo:                          isVideo(m),
		CaptureFPS:                       captureFPS,
		VideoFPS:                         videoFPS,
		UsePanoramaViewer:                pano.Get(m).UsePanoramaViewer,
	}
}

// isMotionPhoto: any of the vendor markers for a still with an embedded
// video — Google's MotionPhoto/MicroVideo flags, a nonzero embedded-video
// offset, or Samsung's embedded video trailer tag.
func isMotionPhoto(m tagmap.Mapping) bool {
	if m.Truthy("MotionPhoto") || m.Truthy("MicroVideo") {
		return true
	}
	if off, ok := m.Int("MicroVideoOffset"); ok && off > 0 {
		return true
	}
	return m.Has("EmbeddedVideoType")
}

func presentationTimestamp(m tagmap.Mapping) *int64 {
	if n, ok := m.Int("MotionPhotoPresentationTimestampUs"); ok {
		return &n
	}
	return nil
}

func isNightSight(m tagmap.Mapping) bool {
	if name, ok := m.Text("FileName"); ok && strings.Contains(strings.ToLower(name), "night") {
		return true
	}
	special, _ := m.Text("SpecialTypeID")
	return strings.Contains(strings.ToLower(special), "night")
}

// isHDR layers several vendor signals: Pixel's CompositeImage, the EXIF
// SceneCaptureType HDR value, Apple's HDRImageType, an "hdr" software
// string, and gain-map presence.
func isHDR(m tagmap.Mapping) bool {
	if n, ok := m.Int("CompositeImage"); ok && n == 3 {
		return true
	}
	if n, ok := m.Int("SceneCaptureType"); ok && n == 3 {
		return true
	}
	if m.Has("HDRImageType") {
		return true
	}
	if sw, ok := m.Text("Software"); ok && strings.Contains(strings.ToLower(sw), "hdr") {
		return true
	}
	return m.Has("GainMapImage")
}

var burstIDSources = []string{"BurstUUID", "GCamera:BurstId", "BurstId"}

// burstInfo checks explicit burst tags first (Apple's BurstUUID, Google
// Camera's BurstId), then falls back to the filename convention used by
// Samsung and older Android cameras.
func burstInfo(m tagmap.Mapping) (bool, string) {
	for _, key := range burstIDSources {
		if id, ok := m.Text(key); ok && id != "" {
			return true, id
		}
	}
	name, ok := m.Text("FileName")
	if !ok {
		return false, ""
	}
	return burstFromFilename(strings.ToLower(name))
}

func burstFromFilename(filenameLower string) (bool, string) {
	prefix, _, found := strings.Cut(filenameLower, "_burst")
	if !found || prefix == "" {
		return false, ""
	}
	return true, prefix
}

func isVideo(m tagmap.Mapping) bool {
	mime, _ := m.Text("MIMEType")
	return strings.HasPrefix(mime, "video/")
}

// frameRates reads the container frame rate and the sensor capture rate.
// Their ratio distinguishes slow motion from normal playback.
func frameRates(m tagmap.Mapping) (videoFPS, captureFPS *float64) {
	videoFPS = firstFPS(m, "AvgFrameRate", "FrameRate", "VideoFrameRate")
	captureFPS = firstFPS(m, "AndroidCaptureFPS", "SourceFrameRate")
	if captureFPS == nil {
		captureFPS = videoFPS
	}
	return videoFPS, captureFPS
}

func firstFPS(m tagmap.Mapping, keys ...string) *float64 {
	for _, key := range keys {
		if f, ok := parseFPS(m[key]); ok {
			return &f
		}
	}
	return nil
}

// parseFPS accepts plain numbers and container fractions like "30000/1001".
func parseFPS(v tagmap.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	s, ok := v.Text()
	if !ok {
		return 0, false
	}
	if num, den, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && d != 0 {
			return n / d, true
		}
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isSlowmotion(captureFPS, videoFPS *float64) bool {
	if captureFPS == nil || videoFPS == nil || *videoFPS <= 0 {
		return false
	}
	return *captureFPS / *videoFPS > 1.05
}

// isTimelapse prefers explicit vendor descriptions; a very low container
// frame rate is the heuristic of last resort.
func isTimelapse(m tagmap.Mapping, videoFPS *float64) bool {
	if comment, ok := m.Text("UserComment"); ok {
		lower := strings.ToLower(comment)
		return strings.Contains(lower, "time-lapse") || strings.Contains(lower, "hyperlapse")
	}
	if desc, ok := m.Text("Description"); ok {
		lower := strings.ToLower(desc)
		return strings.Contains(lower, "time-lapse") || strings.Contains(lower, "hyperlapse")
	}
	if special, ok := m.Text("SpecialTypeID"); ok {
		return strings.Contains(strings.ToLower(special), "timelapse")
	}
	return videoFPS != nil && *videoFPS < 10
}
