package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
)

// Converter turns a feature geometry into a map-plane contour.
type Converter interface {
	Convert(g orb.Geometry) (*Contour, error)
}

// Projector is a spherical Mercator projection scaled so the fitted area
// spans Extent map units, centered on the origin.
type Projector struct {
	center orb.Point // mercator meters
	scale  float64
}

// FitMercator fits a projector to every polygon in fc. When center is non-nil
// (lon/lat) it becomes the map origin instead of the bound's center.
func FitMercator(fc *geojson.FeatureCollection, extent float64, center *orb.Point) (*Projector, error) {
	var b orb.Bound
	first := true
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue
		}
		gb := f.Geometry.Bound()
		mb := orb.Bound{Min: project.WGS84.ToMercator(gb.Min), Max: project.WGS84.ToMercator(gb.Max)}
		if first {
			b = mb
			first = false
		} else {
			b = b.Union(mb)
		}
	}
	if first {
		return nil, ErrEmptyGeometry
	}
	span := math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	if span <= 0 || extent <= 0 {
		return nil, fmt.Errorf("geom: cannot fit span %g to extent %g", span, extent)
	}
	p := &Projector{center: b.Center(), scale: extent / span}
	if center != nil {
		p.center = project.WGS84.ToMercator(*center)
	}
	return p, nil
}

// Point projects lon/lat into the map plane.
func (p *Projector) Point(pt orb.Point) orb.Point {
	m := project.WGS84.ToMercator(pt)
	return orb.Point{(m[0] - p.center[0]) * p.scale, -(m[1] - p.center[1]) * p.scale}
}

// Convert projects a Polygon or MultiPolygon. Other geometry types are
// rejected with ErrNotAreal.
func (p *Projector) Convert(g orb.Geometry) (*Contour, error) {
	var mp orb.MultiPolygon
	switch v := g.(type) {
	case orb.Polygon:
		mp = orb.MultiPolygon{v}
	case orb.MultiPolygon:
		mp = v
	default:
		if g == nil {
			return nil, ErrNotAreal
		}
		return nil, fmt.Errorf("geom: %s: %w", g.GeoJSONType(), ErrNotAreal)
	}
	out := make(orb.MultiPolygon, 0, len(mp))
	for _, poly := range mp {
		np := make(orb.Polygon, 0, len(poly))
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			nr := make(orb.Ring, len(ring))
			for i, pt := range ring {
				nr[i] = p.Point(pt)
			}
			np = append(np, nr)
		}
		if len(np) > 0 {
			out = append(out, np)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyGeometry
	}
	return NewContour(out), nil
}
