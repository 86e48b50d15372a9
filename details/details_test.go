package details

import (
	"errors"
	"strings"
	"testing"

	"github.com/photoatlas/mediameta/tagmap"
)

func TestFullPhotoData(t *testing.T) {
	m := tagmap.Mapping{
		"ImageWidth":              tagmap.Int(4000),
		"ImageHeight":             tagmap.Int(3000),
		"MIMEType":                tagmap.Text("image/jpeg"),
		"FileSize":                tagmap.Int(5242880),
		"ISO":                     tagmap.Int(100),
		"Make":                    tagmap.Text("Canon"),
		"Model":                   tagmap.Text("Canon EOS R5"),
		"LensModel":               tagmap.Text("RF85mm F1.2 L USM"),
		"Aperture":                tagmap.Float(1.8),
		"ExposureTime":            tagmap.Float(0.004),
		"FocalLengthIn35mmFormat": tagmap.Float(85),
	}

	fm, cd, err := Extract(m)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if fm.Width != 4000 || fm.Height != 3000 {
		t.Errorf("dimensions = %dx%d", fm.Width, fm.Height)
	}
	if fm.MIMEType != "image/jpeg" || fm.SizeBytes != 5242880 {
		t.Errorf("file facts = %+v", fm)
	}
	if fm.Duration != nil {
		t.Error("photo should have no duration")
	}

	if cd.ISO == nil || *cd.ISO != 100 {
		t.Errorf("ISO = %v", cd.ISO)
	}
	if cd.CameraMake != "Canon" || cd.CameraModel != "Canon EOS R5" {
		t.Errorf("camera = %q %q", cd.CameraMake, cd.CameraModel)
	}
	if cd.LensModel != "RF85mm F1.2 L USM" {
		t.Errorf("lens = %q", cd.LensModel)
	}
	if cd.Aperture == nil || *cd.Aperture != 1.8 {
		t.Errorf("aperture = %v", cd.Aperture)
	}
	if cd.ExposureTime == nil || *cd.ExposureTime != 0.004 {
		t.Errorf("exposure = %v", cd.ExposureTime)
	}
	if cd.FocalLength == nil || *cd.FocalLength != 85 {
		t.Errorf("focal length = %v", cd.FocalLength)
	}
}

func TestMinimalVideoData(t *testing.T) {
	m := tagmap.Mapping{
		"ImageWidth":  tagmap.Int(1920),
		"ImageHeight": tagmap.Int(1080),
		"MIMEType":    tagmap.Text("video/mp4"),
		"FileSize":    tagmap.Int(15728640),
		"Duration":    tagmap.Float(10.53),
	}

	fm, cd, err := Extract(m)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fm.Duration == nil || *fm.Duration != 10.53 {
		t.Errorf("duration = %v", fm.Duration)
	}
	if cd.ISO != nil || cd.CameraMake != "" || cd.Aperture != nil {
		t.Errorf("photo fields should be absent for a bare video: %+v", cd)
	}
}

func TestStringDuration(t *testing.T) {
	m := tagmap.Mapping{
		"ImageWidth":  tagmap.Int(1280),
		"ImageHeight": tagmap.Int(720),
		"MIMEType":    tagmap.Text("video/webm"),
		"FileSize":    tagmap.Int(1000000),
		"Duration":    tagmap.Text("00:00:05.874000000"),
	}
	fm, _, err := Extract(m)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fm.Duration == nil {
		t.Fatal("duration should parse from clock string")
	}
	if diff := *fm.Duration - 5.874; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("duration = %v, expected 5.874", *fm.Duration)
	}
}

func TestMalformedDurationOmitted(t *testing.T) {
	m := tagmap.Mapping{
		"ImageWidth":  tagmap.Int(1280),
		"ImageHeight": tagmap.Int(720),
		"MIMEType":    tagmap.Text("video/webm"),
		"FileSize":    tagmap.Int(1000000),
		"Duration":    tagmap.Text("5 seconds"),
	}
	fm, _, err := Extract(m)
	if err != nil {
		t.Fatalf("malformed duration must not abort the result: %v", err)
	}
	if fm.Duration != nil {
		t.Errorf("duration = %v, expected omitted", *fm.Duration)
	}
}

func TestDimensionPreferenceOrder(t *testing.T) {
	m := tagmap.Mapping{
		"ImageWidth":       tagmap.Int(4000),
		"ExifImageWidth":   tagmap.Int(2000),
		"ImageHeight":      tagmap.Int(3000),
		"SourceImageWidth": tagmap.Int(1000),
		"MIMEType":         tagmap.Text("image/jpeg"),
		"FileSize":         tagmap.Int(1024),
	}
	fm, _, err := Extract(m)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fm.Width != 4000 {
		t.Errorf("width = %d, ImageWidth outranks the others", fm.Width)
	}

	delete(m, "ImageWidth")
	fm, _, err = Extract(m)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fm.Width != 2000 {
		t.Errorf("width = %d, expected fallback to ExifImageWidth", fm.Width)
	}
}

func TestFocalLengthFallback(t *testing.T) {
	m := tagmap.Mapping{
		"ImageWidth":  tagmap.Int(100),
		"ImageHeight": tagmap.Int(100),
		"MIMEType":    tagmap.Text("image/jpeg"),
		"FileSize":    tagmap.Int(1024),
		"FocalLength": tagmap.Float(50),
	}
	_, cd, err := Extract(m)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if cd.FocalLength == nil || *cd.FocalLength != 50 {
		t.Errorf("focal length = %v, expected plain FocalLength fallback", cd.FocalLength)
	}

	m["FocalLengthIn35mmFormat"] = tagmap.Float(85)
	_, cd, err = Extract(m)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if cd.FocalLength == nil || *cd.FocalLength != 85 {
		t.Errorf("focal length = %v, 35mm-equivalent is preferred", cd.FocalLength)
	}
}

func TestExposureTimeFraction(t *testing.T) {
	m := tagmap.Mapping{
		"ImageWidth":   tagmap.Int(100),
		"ImageHeight":  tagmap.Int(100),
		"MIMEType":     tagmap.Text("image/jpeg"),
		"FileSize":     tagmap.Int(1024),
		"ExposureTime": tagmap.Text("1/250"),
	}
	_, cd, err := Extract(m)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if cd.ExposureTime == nil || *cd.ExposureTime != 1.0/250 {
		t.Errorf("exposure = %v, expected 1/250", cd.ExposureTime)
	}
}

func TestMissingRequiredField(t *testing.T) {
	tests := []struct {
		remove string
	}{
		{"ImageWidth"},
		{"ImageHeight"},
		{"MIMEType"},
		{"FileSize"},
	}
	for _, tt := range tests {
		m := tagmap.Mapping{
			"ImageWidth":  tagmap.Int(100),
			"ImageHeight": tagmap.Int(100),
			"MIMEType":    tagmap.Text("image/jpeg"),
			"FileSize":    tagmap.Int(1024),
		}
		delete(m, tt.remove)
		_, _, err := Extract(m)
		if !errors.Is(err, ErrMissingTag) {
			t.Errorf("missing %s: err = %v, expected ErrMissingTag", tt.remove, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.remove) {
			t.Errorf("missing %s: error %q should name the field", tt.remove, err)
		}
	}
}
