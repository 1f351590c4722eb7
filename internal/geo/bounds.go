// Package geo computes map-facing geometry for result pages.
package geo

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/siteboard/internal/model"
)

// Bounds is the lat/lon envelope of a set of records, used by the map view
// to fit its viewport to the visible page.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// PageBounds returns the envelope of the given records. ok is false for an
// empty page, where no sensible envelope exists.
func PageBounds(records []model.Record) (Bounds, bool) {
	if len(records) == 0 {
		return Bounds{}, false
	}

	b := geom.NewBounds(geom.XY)
	for _, r := range records {
		b.Extend(geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude}))
	}

	return Bounds{
		MinLat: b.Min(1),
		MinLon: b.Min(0),
		MaxLat: b.Max(1),
		MaxLon: b.Max(0),
	}, true
}

// Center returns the midpoint of the envelope.
func (b Bounds) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}
