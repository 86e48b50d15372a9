// Package gps reads GPS coordinate and direction tags and defines the
// timezone-lookup collaborator used for coordinate-based timezone
// attribution. Reverse geocoding into place names is not done here: the
// Location field is carried through from an external geocoder untouched.
package gps

import (
	"github.com/photoatlas/mediameta/tagmap"
)

type DirectionRef string

const (
	TrueNorth     DirectionRef = "true_north"
	MagneticNorth DirectionRef = "magnetic_north"
)

type Info struct {
	Latitude          float64      `json:"latitude"`
	Longitude         float64      `json:"longitude"`
	Altitude          *float64     `json:"altitude,omitempty"`
	ImageDirection    *float64     `json:"image_direction,omitempty"`
	ImageDirectionRef DirectionRef `json:"image_direction_ref,omitempty"`
	Location          *Location    `json:"location,omitempty"`
}

// Location is a resolved place name, supplied by an external geocoder.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Name        string  `json:"name"`
	Admin1      string  `json:"admin1,omitempty"`
	Admin2      string  `json:"admin2,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	CountryName string  `json:"country_name,omitempty"`
}

// FromTags extracts the GPS position from the mapping, or nil when no
// coordinates are present.
func FromTags(m tagmap.Mapping) *Info {
	lat, lon, ok := m["GPSPosition"].Coord()
	if !ok {
		var latOK, lonOK bool
		lat, latOK = m.Float("GPSLatitude")
		lon, lonOK = m.Float("GPSLongitude")
		if !latOK || !lonOK {
			return nil
		}
	}

	info := &Info{Latitude: lat, Longitude: lon}
	if alt, ok := m.Float("GPSAltitude"); ok {
		info.Altitude = &alt
	}
	if dir, ok := m.Float("GPSImgDirection"); ok {
		info.ImageDirection = &dir
	}
	switch ref, _ := m.Text("GPSImgDirectionRef"); ref {
	case "T":
		info.ImageDirectionRef = TrueNorth
	case "M":
		info.ImageDirectionRef = MagneticNorth
	}
	return info
}
