package gps

import (
	"github.com/ringsaturn/tzf"
)

// TimezoneFinder resolves coordinates to IANA timezone names from tzf's
// embedded offline polygon data. No network access is involved.
type TimezoneFinder struct {
	finder tzf.F
}

func NewTimezoneFinder() (*TimezoneFinder, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	return &TimezoneFinder{finder: finder}, nil
}

func (f *TimezoneFinder) TimezoneName(lat, lon float64) (string, bool) {
	name := f.finder.GetTimezoneName(lon, lat)
	return name, name != ""
}
