package geom

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type topology struct {
	Type      string                `json:"type"`
	Transform *topoTransform        `json:"transform"`
	Arcs      [][][]float64         `json:"arcs"`
	Objects   map[string]topoObject `json:"objects"`
}

type topoTransform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topoObject struct {
	Type        string          `json:"type"`
	ID          any             `json:"id"`
	Properties  map[string]any  `json:"properties"`
	Arcs        json.RawMessage `json:"arcs"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometries  []topoObject    `json:"geometries"`
}

// DecodeTopology reads a TopoJSON topology and expands the named object into
// features. An empty object name expands every object, in name order.
func DecodeTopology(r io.Reader, object string) (*geojson.FeatureCollection, error) {
	var t topology
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	if t.Type != "Topology" {
		return nil, fmt.Errorf("topojson: type %q, want Topology", t.Type)
	}
	arcs := t.decodeArcs()
	names := make([]string, 0, len(t.Objects))
	if object != "" {
		if _, ok := t.Objects[object]; !ok {
			return nil, fmt.Errorf("topojson: no object %q", object)
		}
		names = append(names, object)
	} else {
		for n := range t.Objects {
			names = append(names, n)
		}
		sort.Strings(names)
	}
	fc := geojson.NewFeatureCollection()
	for _, n := range names {
		if err := t.appendFeatures(fc, t.Objects[n], arcs); err != nil {
			return nil, fmt.Errorf("topojson: object %q: %w", n, err)
		}
	}
	if len(fc.Features) == 0 {
		return nil, ErrEmptyGeometry
	}
	return fc, nil
}

// decodeArcs undoes delta encoding and quantization.
func (t topology) decodeArcs() []orb.LineString {
	out := make([]orb.LineString, len(t.Arcs))
	for i, arc := range t.Arcs {
		ls := make(orb.LineString, 0, len(arc))
		var x, y float64
		for _, p := range arc {
			if len(p) < 2 {
				continue
			}
			if t.Transform == nil {
				ls = append(ls, orb.Point{p[0], p[1]})
				continue
			}
			x += p[0]
			y += p[1]
			ls = append(ls, t.Transform.apply(x, y))
		}
		out[i] = ls
	}
	return out
}

func (tr *topoTransform) apply(x, y float64) orb.Point {
	return orb.Point{x*tr.Scale[0] + tr.Translate[0], y*tr.Scale[1] + tr.Translate[1]}
}

func (t topology) appendFeatures(fc *geojson.FeatureCollection, o topoObject, arcs []orb.LineString) error {
	if o.Type == "GeometryCollection" {
		for _, g := range o.Geometries {
			if err := t.appendFeatures(fc, g, arcs); err != nil {
				return err
			}
		}
		return nil
	}
	g, err := t.geometry(o, arcs)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	f := geojson.NewFeature(g)
	f.ID = o.ID
	for k, v := range o.Properties {
		f.Properties[k] = v
	}
	fc.Append(f)
	return nil
}

func (t topology) geometry(o topoObject, arcs []orb.LineString) (orb.Geometry, error) {
	switch o.Type {
	case "Polygon":
		var idx [][]int
		if err := json.Unmarshal(o.Arcs, &idx); err != nil {
			return nil, err
		}
		return t.polygon(idx, arcs)
	case "MultiPolygon":
		var idx [][][]int
		if err := json.Unmarshal(o.Arcs, &idx); err != nil {
			return nil, err
		}
		mp := make(orb.MultiPolygon, 0, len(idx))
		for _, p := range idx {
			poly, err := t.polygon(p, arcs)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	case "LineString":
		var idx []int
		if err := json.Unmarshal(o.Arcs, &idx); err != nil {
			return nil, err
		}
		return stitch(idx, arcs)
	case "MultiLineString":
		var idx [][]int
		if err := json.Unmarshal(o.Arcs, &idx); err != nil {
			return nil, err
		}
		mls := make(orb.MultiLineString, 0, len(idx))
		for _, l := range idx {
			ls, err := stitch(l, arcs)
			if err != nil {
				return nil, err
			}
			mls = append(mls, ls)
		}
		return mls, nil
	case "Point":
		var p [2]float64
		if err := json.Unmarshal(o.Coordinates, &p); err != nil {
			return nil, err
		}
		if t.Transform != nil {
			return t.Transform.apply(p[0], p[1]), nil
		}
		return orb.Point(p), nil
	case "", "null":
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported geometry %q", o.Type)
}

func (t topology) polygon(idx [][]int, arcs []orb.LineString) (orb.Polygon, error) {
	poly := make(orb.Polygon, 0, len(idx))
	for _, ringArcs := range idx {
		ls, err := stitch(ringArcs, arcs)
		if err != nil {
			return nil, err
		}
		poly = append(poly, orb.Ring(ls))
	}
	return poly, nil
}

// stitch joins arcs end to end. A negative index ~i is arc i reversed; the
// first point of every following arc repeats the previous last point.
func stitch(idx []int, arcs []orb.LineString) (orb.LineString, error) {
	var out orb.LineString
	for k, i := range idx {
		rev := i < 0
		if rev {
			i = ^i
		}
		if i >= len(arcs) {
			return nil, fmt.Errorf("arc %d out of range", i)
		}
		arc := arcs[i]
		if rev {
			arc = arc.Clone()
			arc.Reverse()
		}
		if k > 0 && len(arc) > 0 {
			arc = arc[1:]
		}
		out = append(out, arc...)
	}
	return out, nil
}
