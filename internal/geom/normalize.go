package geom

import "github.com/paulmach/orb"

// Normalization cleans up one known-bad input geometry before conversion.
type Normalization struct {
	// KeepRings keeps only the leading coordinate arrays: rings of a Polygon,
	// polygons of a MultiPolygon. Zero keeps everything.
	KeepRings int `yaml:"keep_rings"`
}

// Apply returns the normalized geometry. The input is not modified.
func (n Normalization) Apply(g orb.Geometry) orb.Geometry {
	if n.KeepRings <= 0 {
		return g
	}
	switch v := g.(type) {
	case orb.Polygon:
		if len(v) > n.KeepRings {
			return append(orb.Polygon(nil), v[:n.KeepRings]...)
		}
	case orb.MultiPolygon:
		if len(v) > n.KeepRings {
			return append(orb.MultiPolygon(nil), v[:n.KeepRings]...)
		}
	}
	return g
}

// Rules is the per-dataset list of geometry exclusions and cleanups.
type Rules struct {
	Exclude   []string                 `yaml:"exclude"`
	Normalize map[string]Normalization `yaml:"normalize"`
}

func (r Rules) Excluded(id string) bool {
	for _, e := range r.Exclude {
		if e == id {
			return true
		}
	}
	return false
}

func (r Rules) Normalization(id string) (Normalization, bool) {
	n, ok := r.Normalize[id]
	return n, ok
}
