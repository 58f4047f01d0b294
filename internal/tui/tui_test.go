package tui

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"

	"choromap/internal/config"
	"choromap/internal/geom"
	"choromap/internal/region"
	"choromap/internal/scale"
	"choromap/internal/scene"
)

func TestCameraZoomClamp(t *testing.T) {
	c := newCamera(config.CameraSpec{Position: [3]float64{0, 30, 10}, Up: [3]float64{0, 1, 0}, MinDistance: 5, MaxDistance: 50})
	for i := 0; i < 50; i++ {
		c.Zoom(1 / 1.2)
	}
	if d := c.Distance(); math.Abs(d-5) > 1e-9 {
		t.Fatalf("min clamp: distance = %v", d)
	}
	for i := 0; i < 50; i++ {
		c.Zoom(1.2)
	}
	if d := c.Distance(); math.Abs(d-50) > 1e-9 {
		t.Fatalf("max clamp: distance = %v", d)
	}
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	c := newCamera(config.CameraSpec{Position: [3]float64{0, 30, 10}, Up: [3]float64{0, 1, 0}, MinDistance: 1, MaxDistance: 100})
	d := c.Distance()
	c.Orbit(orbitStep*3, orbitStep*2)
	if math.Abs(c.Distance()-d) > 1e-9 {
		t.Fatalf("distance changed %v -> %v", d, c.Distance())
	}
	if math.Abs(c.Up.Len()-1) > 1e-9 {
		t.Fatalf("up not unit: %v", c.Up)
	}
	st := c.State()
	var r Camera
	r.MinDist, r.MaxDist = 1, 100
	r.Restore(st)
	if !r.Eye.ApproxEqual(c.Eye) || !r.Up.ApproxEqual(c.Up) {
		t.Fatalf("restore mismatch: %+v vs %+v", r, c)
	}
}

func TestBrailleFillKeepsHoles(t *testing.T) {
	b := newBrailleBuf(20, 10)
	outer := orb.Ring{{0, 0}, {40, 0}, {40, 40}, {0, 40}, {0, 0}}
	hole := orb.Ring{{10, 10}, {30, 10}, {30, 30}, {10, 30}, {10, 10}}
	b.fillRings([]orb.Ring{outer, hole}, colorful.Color{R: 1})
	if b.m[5][10] != 0 {
		t.Fatalf("hole cell filled: %08b", b.m[5][10])
	}
	if b.m[1][2] != 0xFF {
		t.Fatalf("solid cell = %08b", b.m[1][2])
	}
	if b.col[1][2] != "#ff0000" {
		t.Fatalf("color = %q", b.col[1][2])
	}
}

func pickScene(t *testing.T) (*Canvas, *scene.Manager) {
	t.Helper()
	rb := region.NewBuilder()
	sq := geom.NewContour(orb.MultiPolygon{{{{-5, -5}, {5, -5}, {5, 5}, {-5, 5}, {-5, -5}}}})
	rb.Set("AB", region.Record{Name: "Alba", Series: map[region.Period]float64{"2011": 100}, Contour: sq})
	reg := rb.Build([]region.Period{"2011"}, 100)
	cv := NewCanvas()
	cv.Camera = newCamera(config.CameraSpec{Position: [3]float64{0, 30, 10}, Up: [3]float64{0, 1, 0}, MinDistance: 1, MaxDistance: 100})
	mgr := scene.NewManager(cv, reg, scale.NewEncoding(100, 2, true), scene.Style{Hue: 105, Saturation: 0.8}, scene.Placement{RotateXDeg: 90})
	if err := mgr.Rebuild("2011"); err != nil {
		t.Fatal(err)
	}
	return cv, mgr
}

func TestCanvasPick(t *testing.T) {
	cv, mgr := pickScene(t)
	if cv.Len() != 1 {
		t.Fatalf("canvas holds %d meshes", cv.Len())
	}
	if hits := cv.Pick(20, 10); hits != nil {
		t.Fatal("pick before the first frame must be empty")
	}
	lines := cv.Render(40, 20, scene.Hit{})
	if len(lines) != 20 {
		t.Fatalf("rendered %d lines", len(lines))
	}
	hits := cv.Pick(20, 10)
	if len(hits) != 1 || hits[0].RegionID != "AB" {
		t.Fatalf("center hits = %+v", hits)
	}
	if hits := cv.Pick(0, 0); len(hits) != 0 {
		t.Fatalf("corner hits = %+v", hits)
	}

	mgr.Clear()
	if cv.Len() != 0 || cv.Pick(20, 10) != nil {
		t.Fatal("cleared canvas still resolves hits")
	}
}

func TestMeshBehindCameraDropped(t *testing.T) {
	cv, _ := pickScene(t)
	cv.Camera.Eye = mgl64.Vec3{0, 1, 0}
	cv.Camera.Up = mgl64.Vec3{0, 0, -1}
	cv.Render(40, 20, scene.Hit{})
	if len(cv.frame) != 0 {
		t.Fatalf("frame holds %d meshes", len(cv.frame))
	}
}
