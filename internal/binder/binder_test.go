package binder

import (
	"reflect"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"choromap/internal/geom"
	"choromap/internal/region"
)

const counties = `{"type":"FeatureCollection","features":[
 {"type":"Feature","id":"AB","properties":{"name":"Alba"},
  "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
 {"type":"Feature","id":"IF","properties":{"name":"Ilfov"},
  "geometry":{"type":"Polygon","coordinates":[[[1,0],[3,0],[3,2],[1,2],[1,0]],[[1.5,0.5],[2.5,0.5],[2.5,1.5],[1.5,1.5],[1.5,0.5]]]}},
 {"type":"Feature","id":"B","properties":{"name":"Bucuresti"},
  "geometry":{"type":"Polygon","coordinates":[[[1.5,0.5],[2.5,0.5],[2.5,1.5],[1.5,1.5],[1.5,0.5]]]}},
 {"type":"Feature","id":"XX","properties":{"name":"Nowhere"},
  "geometry":{"type":"Point","coordinates":[0,0]}}
]}`

func setup(t *testing.T) (*region.Builder, Binder) {
	t.Helper()
	fc, err := geom.DecodeFeatures(strings.NewReader(counties))
	if err != nil {
		t.Fatal(err)
	}
	p, err := geom.FitMercator(fc, 20, nil)
	if err != nil {
		t.Fatal(err)
	}
	rb := region.NewBuilder()
	rb.Ensure("AB")
	rb.Ensure("IF")
	rb.Ensure("CJ")
	rb.Ensure("XX")
	return rb, Binder{
		Converter:    p,
		NameProperty: "name",
		Rules:        geom.Rules{Normalize: map[string]geom.Normalization{"IF": {KeepRings: 1}}},
	}
}

func TestBind(t *testing.T) {
	rb, b := setup(t)
	fc, _ := geom.DecodeFeatures(strings.NewReader(counties))
	rep, err := b.Bind(rb, fc)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if want := []region.ID{"AB", "IF"}; !reflect.DeepEqual(rep.Bound, want) {
		t.Fatalf("Bound = %v, want %v", rep.Bound, want)
	}
	if want := []string{"B"}; !reflect.DeepEqual(rep.Unmapped, want) {
		t.Fatalf("Unmapped = %v, want %v", rep.Unmapped, want)
	}
	if want := []region.ID{"CJ", "XX"}; !reflect.DeepEqual(rep.Unjoined, want) {
		t.Fatalf("Unjoined = %v, want %v", rep.Unjoined, want)
	}
	ab, _ := rb.Get("AB")
	if ab.Name != "Alba" || !ab.Renderable() {
		t.Fatalf("AB not bound: %+v", ab)
	}
	ilfov, _ := rb.Get("IF")
	if got := ilfov.Contour.Rings(); got != 1 {
		t.Fatalf("IF hole should be dropped, got %d rings", got)
	}
	if _, ok := fc.Features[1].Geometry.(orb.Polygon); !ok || len(fc.Features[1].Geometry.(orb.Polygon)) != 2 {
		t.Fatal("normalization must not modify the source feature")
	}
}

func TestBindExclusions(t *testing.T) {
	rb, b := setup(t)
	b.Rules.Exclude = []string{"AB", "CJ"}
	fc, _ := geom.DecodeFeatures(strings.NewReader(counties))
	rep, err := b.Bind(rb, fc)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"AB"}; !reflect.DeepEqual(rep.Excluded, want) {
		t.Fatalf("Excluded = %v, want %v", rep.Excluded, want)
	}
	ab, _ := rb.Get("AB")
	if ab.Renderable() {
		t.Fatal("excluded AB must stay without contour")
	}
	// excluded records are not reported as unjoined
	if want := []region.ID{"XX"}; !reflect.DeepEqual(rep.Unjoined, want) {
		t.Fatalf("Unjoined = %v, want %v", rep.Unjoined, want)
	}
}

func TestBindNeedsConverter(t *testing.T) {
	fc, _ := geom.DecodeFeatures(strings.NewReader(counties))
	if _, err := (Binder{}).Bind(region.NewBuilder(), fc); err == nil {
		t.Fatal("expected error without converter")
	}
}
