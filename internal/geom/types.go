package geom

import (
	"errors"

	"github.com/paulmach/orb"
)

var (
	ErrNotAreal       = errors.New("geometry is not a polygon")
	ErrEmptyGeometry  = errors.New("no geometries found")
	ErrMissingFeature = errors.New("feature has no id")
)

// Contour is a region outline in the map plane. x grows east and y grows
// south, the way an SVG path is laid out. Polygons keep GeoJSON ring order
// (first outer, following holes).
type Contour struct {
	Polygons orb.MultiPolygon
	Bound    orb.Bound
}

// NewContour wraps mp and caches its bound.
func NewContour(mp orb.MultiPolygon) *Contour {
	return &Contour{Polygons: mp, Bound: mp.Bound()}
}

// Rings counts outer rings and holes over all polygons.
func (c *Contour) Rings() int {
	n := 0
	for _, p := range c.Polygons {
		n += len(p)
	}
	return n
}

func (c *Contour) Empty() bool {
	return c == nil || len(c.Polygons) == 0
}
