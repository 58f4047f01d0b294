package tui

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"choromap/internal/config"
	"choromap/internal/viewstate"
)

// Camera orbits the origin, trackball style: elevation tilts Up along with
// the eye so the pose never flips at the poles.
type Camera struct {
	Eye     mgl64.Vec3
	Up      mgl64.Vec3
	Target  mgl64.Vec3
	Fovy    float64 // degrees
	MinDist float64
	MaxDist float64
}

func newCamera(spec config.CameraSpec) Camera {
	c := Camera{
		Eye:     spec.Position,
		Up:      spec.Up,
		Fovy:    45,
		MinDist: spec.MinDistance,
		MaxDist: spec.MaxDistance,
	}
	c.Zoom(1)
	return c
}

// Orbit rotates the eye by az radians around Up, then el radians around the
// camera's right axis.
func (c *Camera) Orbit(az, el float64) {
	off := c.Eye.Sub(c.Target)
	up := c.Up.Normalize()
	off = mgl64.QuatRotate(az, up).Rotate(off)
	right := off.Cross(up)
	if right.Len() > 1e-9 {
		q := mgl64.QuatRotate(el, right.Normalize())
		off = q.Rotate(off)
		up = q.Rotate(up)
	}
	c.Eye = c.Target.Add(off)
	c.Up = up
}

// Zoom scales the eye distance by f, kept within MinDist..MaxDist.
func (c *Camera) Zoom(f float64) {
	off := c.Eye.Sub(c.Target)
	d := off.Len()
	if d < 1e-9 {
		return
	}
	nd := d * f
	if c.MaxDist > 0 {
		nd = math.Min(nd, c.MaxDist)
	}
	nd = math.Max(nd, c.MinDist)
	c.Eye = c.Target.Add(off.Mul(nd / d))
}

func (c Camera) Distance() float64 { return c.Eye.Sub(c.Target).Len() }

// ViewProjection combines a 45 degree perspective with the look-at view.
func (c Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	p := mgl64.Perspective(mgl64.DegToRad(c.Fovy), aspect, 0.1, 10000)
	return p.Mul4(mgl64.LookAtV(c.Eye, c.Target, c.Up))
}

func (c Camera) State() viewstate.Camera {
	return viewstate.Camera{Position: c.Eye, Up: c.Up}
}

func (c *Camera) Restore(s viewstate.Camera) {
	c.Eye = s.Position
	c.Up = s.Up
	c.Zoom(1)
}
