package tui

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"choromap/internal/scene"
)

// Canvas is the terminal scene. Meshes are projected through the camera onto
// a braille microgrid (2x4 dots per cell).
type Canvas struct {
	Camera Camera

	meshes []*scene.Mesh
	w, h   int    // cells of the last frame
	frame  []flat // last frame, nearest first
}

// flat is one mesh projected into microgrid coordinates.
type flat struct {
	mesh  *scene.Mesh
	depth float64
	caps  []orb.Ring
	walls []orb.Ring
}

func NewCanvas() *Canvas { return &Canvas{} }

func (c *Canvas) Add(m *scene.Mesh) {
	c.meshes = append(c.meshes, m)
	c.frame = nil
}

func (c *Canvas) Remove(m *scene.Mesh) {
	c.meshes = slices.DeleteFunc(c.meshes, func(x *scene.Mesh) bool { return x == m })
	c.frame = nil
}

func (c *Canvas) Len() int { return len(c.meshes) }

// project flattens every mesh for a w x h cell viewport. Meshes with a
// vertex behind the camera are dropped from the frame.
func (c *Canvas) project(w, h int) []flat {
	wMic, hMic := float64(w*2), float64(h*4)
	vp := c.Camera.ViewProjection(wMic / hMic)
	toScreen := func(m *scene.Mesh, v mgl64.Vec3) (orb.Point, float64, bool) {
		clip := vp.Mul4x1(m.World(v).Vec4(1))
		if clip.W() < 0.1 {
			return orb.Point{}, 0, false
		}
		x := (clip.X()/clip.W() + 1) / 2 * (wMic - 1)
		y := (1 - clip.Y()/clip.W()) / 2 * (hMic - 1)
		return orb.Point{x, y}, clip.W(), true
	}
	out := make([]flat, 0, len(c.meshes))
next:
	for _, m := range c.meshes {
		f := flat{mesh: m}
		n := 0
		for ri, top := range m.Solid.Cap {
			bottom := m.Solid.Base[ri]
			capRing := make(orb.Ring, len(top))
			baseRing := make(orb.Ring, len(bottom))
			for i := range top {
				p, d, ok := toScreen(m, top[i])
				if !ok {
					continue next
				}
				q, _, ok := toScreen(m, bottom[i])
				if !ok {
					continue next
				}
				capRing[i], baseRing[i] = p, q
				f.depth += d
				n++
			}
			f.caps = append(f.caps, capRing)
			for i := 0; i+1 < len(capRing); i++ {
				f.walls = append(f.walls, orb.Ring{capRing[i], capRing[i+1], baseRing[i+1], baseRing[i], capRing[i]})
			}
		}
		if n == 0 {
			continue
		}
		f.depth /= float64(n)
		out = append(out, f)
	}
	slices.SortStableFunc(out, func(a, b flat) int {
		switch {
		case a.depth < b.depth:
			return -1
		case a.depth > b.depth:
			return 1
		}
		return 0
	})
	return out
}

// Render draws the frame far to near and keeps it for picking.
func (c *Canvas) Render(w, h int, highlight scene.Hit) []string {
	c.w, c.h = w, h
	c.frame = c.project(w, h)
	br := newBrailleBuf(w, h)
	for i := len(c.frame) - 1; i >= 0; i-- {
		f := c.frame[i]
		col := f.mesh.Color
		if f.mesh.RegionID == highlight.RegionID && highlight.RegionID != "" {
			col = hoverColor
		}
		side := shade(col, 0.65)
		for _, wall := range f.walls {
			br.fillRings([]orb.Ring{wall}, side)
		}
		br.fillRings(f.caps, col)
		edge := shade(col, 0.45)
		for _, r := range f.caps {
			br.strokeRing(r, edge)
		}
	}
	return br.toLines()
}

// Pick returns the meshes under cell (x, y) of the last frame, nearest first.
func (c *Canvas) Pick(x, y int) []scene.Hit {
	if c.frame == nil || x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	pt := orb.Point{float64(x*2) + 0.5, float64(y*4) + 1.5}
	var hits []scene.Hit
	for _, f := range c.frame {
		if f.contains(pt) {
			hits = append(hits, scene.Hit{RegionID: f.mesh.RegionID, Depth: f.depth})
		}
	}
	return hits
}

func (f flat) contains(pt orb.Point) bool {
	in := false
	for _, r := range f.caps {
		if planar.RingContains(r, pt) {
			in = !in
		}
	}
	if in {
		return true
	}
	for _, w := range f.walls {
		if planar.RingContains(w, pt) {
			return true
		}
	}
	return false
}

func shade(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}
