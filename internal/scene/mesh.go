package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"choromap/internal/geom"
	"choromap/internal/region"
)

// Solid is an extruded contour in mesh-local space. Cap rings lie on z=0,
// Base rings on z=Depth; side walls join matching vertices of the two.
type Solid struct {
	Cap   [][]mgl64.Vec3
	Base  [][]mgl64.Vec3
	Depth float64
}

// Extrude sweeps every ring of c along +z by depth.
func Extrude(c *geom.Contour, depth float64) Solid {
	s := Solid{Depth: depth}
	if c.Empty() {
		return s
	}
	for _, poly := range c.Polygons {
		for _, ring := range poly {
			top := make([]mgl64.Vec3, len(ring))
			bottom := make([]mgl64.Vec3, len(ring))
			for i, p := range ring {
				top[i] = mgl64.Vec3{p[0], p[1], 0}
				bottom[i] = mgl64.Vec3{p[0], p[1], depth}
			}
			s.Cap = append(s.Cap, top)
			s.Base = append(s.Base, bottom)
		}
	}
	return s
}

// Mesh is one region's visual object for one period. Meshes are never
// mutated after the manager hands them to the scene.
type Mesh struct {
	RegionID  region.ID
	Period    region.Period
	Value     float64
	Extrusion float64
	Luminance float64
	Color     colorful.Color
	Solid     Solid
	Transform mgl64.Mat4
}

// World maps a mesh-local point into world space.
func (m *Mesh) World(p mgl64.Vec3) mgl64.Vec3 {
	return m.Transform.Mul4x1(p.Vec4(1)).Vec3()
}

// Placement is the fixed part of every mesh transform.
type Placement struct {
	RotateXDeg float64    `yaml:"rotate_x_deg"`
	Translate  [3]float64 `yaml:"translate"`
}

// Matrix returns RotateX * Translate: the translation is in map-plane units
// and happens before the map is tipped over.
func (p Placement) Matrix() mgl64.Mat4 {
	r := mgl64.HomogRotate3DX(mgl64.DegToRad(p.RotateXDeg))
	return r.Mul4(mgl64.Translate3D(p.Translate[0], p.Translate[1], p.Translate[2]))
}

// Style fixes the hue of a dataset. Saturation is either constant or follows
// the luminance of each region.
type Style struct {
	Hue                    float64 `yaml:"hue"`
	Saturation             float64 `yaml:"saturation"`
	SaturationFollowsValue bool    `yaml:"saturation_follows_value"`
}

// Color derives the HSL color for a luminance in [0,1].
func (s Style) Color(luminance float64) colorful.Color {
	sat := s.Saturation
	if s.SaturationFollowsValue {
		sat = luminance
	}
	return colorful.Hsl(s.Hue, sat, luminance).Clamped()
}
