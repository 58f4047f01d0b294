package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"choromap/internal/config"
	"choromap/internal/geom"
	"choromap/internal/ingest"
	"choromap/internal/loader"
	"choromap/internal/scene"
)

type fakeScene struct{ live map[*scene.Mesh]bool }

func (f *fakeScene) Add(m *scene.Mesh)    { f.live[m] = true }
func (f *fakeScene) Remove(m *scene.Mesh) { delete(f.live, m) }

const (
	topo = `{"type":"FeatureCollection","features":[
 {"type":"Feature","id":"AB","properties":{"name":"Alba"},
  "geometry":{"type":"Polygon","coordinates":[[[23,46],[24,46],[24,46.5],[23,46.5],[23,46]]]}},
 {"type":"Feature","id":"IF","properties":{"name":"Ilfov"},
  "geometry":{"type":"Polygon","coordinates":[[[26,44.3],[26.4,44.3],[26.4,44.7],[26,44.7],[26,44.3]],[[26.1,44.4],[26.2,44.4],[26.2,44.5],[26.1,44.5],[26.1,44.4]]]}},
 {"type":"Feature","id":"B","properties":{"name":"Bucuresti"},
  "geometry":{"type":"Polygon","coordinates":[[[26.1,44.4],[26.2,44.4],[26.2,44.5],[26.1,44.5],[26.1,44.4]]]}}
]}`
	lookup = `{"Alba":"AB","Ilfov":"IF"}`
	census = "name,1992,2002,2011\nAlba,\"414,227\",382747,375000\nIlfov,286510,300123,388738\n"
)

func romania(t *testing.T) config.Dataset {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	ds, _ := config.Find(config.Presets(), "romania")
	ds.Sources = []loader.Source{
		{Key: "judete", Kind: loader.KindGeoJSON, Path: write("ro.geojson", topo)},
		{Key: "id_judete", Kind: loader.KindJSON, Path: write("id.json", lookup)},
		{Key: "recensaminte", Kind: loader.KindCSV, Path: write("census.csv", census)},
	}
	return ds
}

func TestOpenAndSelect(t *testing.T) {
	sc := &fakeScene{live: map[*scene.Mesh]bool{}}
	s, err := Open(context.Background(), romania(t), sc, loader.New(nil))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.State() != scene.Empty || len(sc.live) != 0 {
		t.Fatal("Open must not populate the scene")
	}
	if got := s.Periods(); len(got) != 3 || got[0] != "1992" {
		t.Fatalf("periods = %v", got)
	}
	if s.Encoding().Max != 414227 {
		t.Fatalf("max = %v", s.Encoding().Max)
	}
	if rep := s.BindReport(); len(rep.Unmapped) != 1 || rep.Unmapped[0] != "B" {
		t.Fatalf("unmapped = %v", rep.Unmapped)
	}
	ilfov, _ := s.Registry().Get("IF")
	if ilfov.Contour.Rings() != 1 {
		t.Fatalf("IF rings = %d", ilfov.Contour.Rings())
	}

	p, err := s.SelectFragment("#/an/2011")
	if err != nil || p != "2011" {
		t.Fatalf("SelectFragment = %v, %v", p, err)
	}
	if len(sc.live) != 2 || s.Fragment() != "#/an/2011" {
		t.Fatalf("live=%d fragment=%s", len(sc.live), s.Fragment())
	}
	if got := s.Label([]scene.Hit{{RegionID: "AB"}}); got != "Alba: 375,000" {
		t.Fatalf("Label = %q", got)
	}

	if p, _ := s.SelectFragment("#/an/1999"); p != "1992" {
		t.Fatalf("fallback = %v", p)
	}
	if err := s.Step(-1); err != nil || s.Current() != "2011" {
		t.Fatalf("Step(-1) -> %v, %v", s.Current(), err)
	}
	if err := s.Step(1); err != nil || s.Current() != "1992" {
		t.Fatalf("Step(1) -> %v, %v", s.Current(), err)
	}

	s.Close()
	if len(sc.live) != 0 {
		t.Fatalf("Close left %d meshes", len(sc.live))
	}
}

func TestOpenLoadFailure(t *testing.T) {
	ds := romania(t)
	ds.Sources[2].Path = filepath.Join(t.TempDir(), "missing.csv")
	sc := &fakeScene{live: map[*scene.Mesh]bool{}}
	_, err := Open(context.Background(), ds, sc, loader.New(nil))
	var le *loader.LoadError
	if !errors.As(err, &le) || le.Key != "recensaminte" {
		t.Fatalf("err = %v, want LoadError for recensaminte", err)
	}
}

func TestOpenMalformedTable(t *testing.T) {
	ds := romania(t)
	p := filepath.Join(t.TempDir(), "bad.csv")
	os.WriteFile(p, []byte("name,1992\nAlba,many\n"), 0o644)
	ds.Sources[2].Path = p
	_, err := Open(context.Background(), ds, &fakeScene{live: map[*scene.Mesh]bool{}}, loader.New(nil))
	if !errors.Is(err, ingest.ErrMalformedInput) {
		t.Fatalf("err = %v, want ErrMalformedInput", err)
	}
}

func TestOpenUnmatchedLookup(t *testing.T) {
	ds := romania(t)
	p := filepath.Join(t.TempDir(), "c.csv")
	os.WriteFile(p, []byte("name,1992\nCluj,1\n"), 0o644)
	ds.Sources[2].Path = p
	_, err := Open(context.Background(), ds, &fakeScene{live: map[*scene.Mesh]bool{}}, loader.New(nil))
	if !errors.Is(err, ingest.ErrMalformedInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenNoPolygons(t *testing.T) {
	ds := romania(t)
	p := filepath.Join(t.TempDir(), "pts.geojson")
	os.WriteFile(p, []byte(`{"type":"FeatureCollection","features":[{"type":"Feature","id":"AB","geometry":{"type":"Point","coordinates":[23,46]}}]}`), 0o644)
	ds.Sources[0].Path = p
	_, err := Open(context.Background(), ds, &fakeScene{live: map[*scene.Mesh]bool{}}, loader.New(nil))
	if !errors.Is(err, geom.ErrEmptyGeometry) {
		t.Fatalf("err = %v", err)
	}
}
