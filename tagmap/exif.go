package tagmap

import (
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// goexif uses the raw EXIF field names for a handful of tags where exiftool
// reports a friendlier one; the rest of this module speaks exiftool names.
var exifKeyAliases = map[string]string{
	"DateTime":              "ModifyDate",
	"DateTimeDigitized":     "CreateDate",
	"PixelXDimension":       "ExifImageWidth",
	"PixelYDimension":       "ExifImageHeight",
	"ISOSpeedRatings":       "ISO",
	"FocalLengthIn35mmFilm": "FocalLengthIn35mmFormat",
}

// FromExif converts an already-decoded EXIF block into a Mapping, so callers
// using goexif for extraction can feed this engine directly. Individual tags
// that fail to convert are skipped.
func FromExif(x *exif.Exif) Mapping {
	m := Mapping{}
	_ = x.Walk(exifWalker{m})
	if lat, lon, err := x.LatLong(); err == nil {
		m["GPSLatitude"] = Float(lat)
		m["GPSLongitude"] = Float(lon)
		m["GPSPosition"] = Coord(lat, lon)
	}
	return m
}

type exifWalker struct {
	m Mapping
}

func (w exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	key := string(name)
	if alias, ok := exifKeyAliases[key]; ok {
		key = alias
	}
	switch tag.Format() {
	case tiff.StringVal:
		if v, err := tag.StringVal(); err == nil {
			w.m[key] = Text(cleanString(v))
		}
	case tiff.IntVal:
		if v, err := tag.Int(0); err == nil {
			w.m[key] = Int(int64(v))
		}
	case tiff.RatVal:
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			w.m[key] = Float(float64(num) / float64(den))
		}
	case tiff.FloatVal:
		if v, err := tag.Float(0); err == nil {
			w.m[key] = Float(v)
		}
	}
	return nil
}

func cleanString(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}
