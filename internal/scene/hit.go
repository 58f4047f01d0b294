package scene

import "choromap/internal/region"

// Hit is one intersection reported by a picker, nearest first.
type Hit struct {
	RegionID region.ID
	Depth    float64
}

// Picker resolves a screen cell into the meshes under it.
type Picker interface {
	Pick(x, y int) []Hit
}
