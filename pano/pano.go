// Package pano detects panoramas and photospheres from GPano projection tags
// and computes the visible field of view for partial panoramas.
package pano

import (
	"strings"

	"github.com/photoatlas/mediameta/tagmap"
)

type Info struct {
	UsePanoramaViewer bool      `json:"use_panorama_viewer"`
	IsPhotosphere     bool      `json:"is_photosphere"`
	ProjectionType    string    `json:"projection_type,omitempty"`
	View              *ViewInfo `json:"view_info,omitempty"`
}

type ViewInfo struct {
	HorizontalFOVDeg float64 `json:"horizontal_fov_deg"`
	VerticalFOVDeg   float64 `json:"vertical_fov_deg"`
	CenterYawDeg     float64 `json:"center_yaw_deg"`
	CenterPitchDeg   float64 `json:"center_pitch_deg"`
}

var projectionSources = []string{
	"XMP-GPano:ProjectionType",
	"GPano:ProjectionType",
	"ProjectionType",
}

func Get(m tagmap.Mapping) Info {
	filename, _ := m.Text("FileName")
	hasPanoInFilename := strings.Contains(strings.ToLower(filename), ".pano.")

	var projection string
	for _, key := range projectionSources {
		if s, ok := m.Text(key); ok && s != "" {
			projection = s
			break
		}
	}
	isEquirectangular := strings.EqualFold(projection, "equirectangular")

	var view *ViewInfo
	if isEquirectangular {
		view = partialView(m)
		if view == nil {
			// Crop tags missing: by convention a full sphere.
			view = &ViewInfo{HorizontalFOVDeg: 360, VerticalFOVDeg: 180}
		}
	}

	isPhotosphere := false
	if isEquirectangular {
		fullH := abs(view.HorizontalFOVDeg-360) < 0.1
		fullV := abs(view.VerticalFOVDeg-180) < 0.1
		isPhotosphere = fullH && fullV
	}

	return Info{
		UsePanoramaViewer: view != nil || hasPanoInFilename,
		IsPhotosphere:     isPhotosphere,
		ProjectionType:    projection,
		View:              view,
	}
}

// partialView computes the field of view and center of a cropped panorama
// from the GPano pixel tags. All six tags must be present.
func partialView(m tagmap.Mapping) *ViewInfo {
	fullW, ok1 := m.Float("FullPanoWidthPixels")
	fullH, ok2 := m.Float("FullPanoHeightPixels")
	cropW, ok3 := m.Float("CroppedAreaImageWidthPixels")
	cropH, ok4 := m.Float("CroppedAreaImageHeightPixels")
	cropLeft, ok5 := m.Float("CroppedAreaLeftPixels")
	cropTop, ok6 := m.Float("CroppedAreaTopPixels")
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return nil
	}
	if fullW == 0 || fullH == 0 {
		return nil
	}
	return &ViewInfo{
		HorizontalFOVDeg: cropW / fullW * 360,
		VerticalFOVDeg:   cropH / fullH * 180,
		CenterYawDeg:     ((cropLeft+cropW/2)/fullW - 0.5) * 360,
		CenterPitchDeg:   ((cropTop+cropH/2)/fullH - 0.5) * -180,
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
