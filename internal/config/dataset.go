package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"choromap/internal/geom"
	"choromap/internal/loader"
	"choromap/internal/scene"
)

// Dataset is everything needed to open one choropleth session.
type Dataset struct {
	Name      string          `yaml:"name"`
	Title     string          `yaml:"title"`
	Scope     string          `yaml:"scope"` // first fragment segment, "#/<scope>/<period>"
	Sources   []loader.Source `yaml:"sources"`
	Table     TableSpec       `yaml:"table"`
	Geometry  GeometrySpec    `yaml:"geometry"`
	Encoding  EncodingSpec    `yaml:"encoding"`
	Style     scene.Style     `yaml:"style"`
	Placement scene.Placement `yaml:"placement"`
	Label     string          `yaml:"label"`
	Camera    CameraSpec      `yaml:"camera"`
}

type TableSpec struct {
	Source     string      `yaml:"source"`
	NonPeriod  []string    `yaml:"non_period"`
	IDColumn   string      `yaml:"id_column"`
	Lookup     *LookupSpec `yaml:"lookup"`
	NameColumn string      `yaml:"name_column"`
}

// LookupSpec resolves ids through a name -> id json source.
type LookupSpec struct {
	Source string `yaml:"source"`
	Column string `yaml:"column"`
}

type GeometrySpec struct {
	Source       string      `yaml:"source"`
	IDProperty   string      `yaml:"id_property"`
	NameProperty string      `yaml:"name_property"`
	Rules        geom.Rules  `yaml:"rules"`
	Extent       float64     `yaml:"extent"`
	Center       *[2]float64 `yaml:"center"` // lon, lat
}

type EncodingSpec struct {
	MaxExtrusion float64 `yaml:"max_extrusion"`
	Clamp        *bool   `yaml:"clamp"`
}

// Clamped defaults to true.
func (e EncodingSpec) Clamped() bool {
	return e.Clamp == nil || *e.Clamp
}

type CameraSpec struct {
	Position    [3]float64 `yaml:"position"`
	Up          [3]float64 `yaml:"up"`
	MinDistance float64    `yaml:"min_distance"`
	MaxDistance float64    `yaml:"max_distance"`
}

type file struct {
	Datasets []Dataset `yaml:"datasets"`
}

// LoadDatasets decodes and validates a datasets.yaml file.
func LoadDatasets(path string) ([]Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Datasets) == 0 {
		return nil, fmt.Errorf("%s: no datasets", path)
	}
	for i := range f.Datasets {
		f.Datasets[i].applyDefaults()
		if err := f.Datasets[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return f.Datasets, nil
}

// Catalog returns the presets followed by the datasets in path. A file
// dataset replaces a preset of the same name. An empty path yields presets.
func Catalog(path string) ([]Dataset, error) {
	out := Presets()
	if path == "" {
		return out, nil
	}
	extra, err := LoadDatasets(path)
	if err != nil {
		return nil, err
	}
	for _, d := range extra {
		replaced := false
		for i := range out {
			if out[i].Name == d.Name {
				out[i] = d
				replaced = true
			}
		}
		if !replaced {
			out = append(out, d)
		}
	}
	return out, nil
}

// Find returns the dataset called name.
func Find(ds []Dataset, name string) (Dataset, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}

func (d *Dataset) applyDefaults() {
	if d.Title == "" {
		d.Title = d.Name
	}
	if d.Scope == "" {
		d.Scope = d.Name
	}
	if d.Geometry.Extent == 0 {
		d.Geometry.Extent = 20
	}
	if d.Placement == (scene.Placement{}) {
		d.Placement.RotateXDeg = 90
	}
	if d.Camera.Up == ([3]float64{}) {
		d.Camera.Up = [3]float64{0, 1, 0}
	}
	if d.Camera.Position == ([3]float64{}) {
		d.Camera.Position = [3]float64{0, 24, 12}
	}
	if d.Camera.MinDistance == 0 {
		d.Camera.MinDistance = 5
	}
	if d.Camera.MaxDistance == 0 {
		d.Camera.MaxDistance = 100
	}
}

// Validate checks that every role points at a source of the right kind.
func (d Dataset) Validate() error {
	if d.Name == "" {
		return errors.New("dataset without name")
	}
	wrap := func(format string, args ...any) error {
		return fmt.Errorf("dataset %s: "+format, append([]any{d.Name}, args...)...)
	}
	kinds := make(map[string]loader.Kind, len(d.Sources))
	for _, s := range d.Sources {
		if _, dup := kinds[s.Key]; dup {
			return wrap("duplicate source key %q", s.Key)
		}
		kinds[s.Key] = s.Kind
	}
	check := func(role, key string, allowed ...loader.Kind) error {
		k, ok := kinds[key]
		if !ok {
			return wrap("%s source %q not defined", role, key)
		}
		for _, a := range allowed {
			if k == a {
				return nil
			}
		}
		return wrap("%s source %q has kind %q", role, key, k)
	}
	if err := check("table", d.Table.Source, loader.KindCSV); err != nil {
		return err
	}
	if err := check("geometry", d.Geometry.Source, loader.KindGeoJSON, loader.KindTopoJSON, loader.KindWKTCSV); err != nil {
		return err
	}
	switch {
	case d.Table.IDColumn != "" && d.Table.Lookup != nil:
		return wrap("table sets both id_column and lookup")
	case d.Table.IDColumn == "" && d.Table.Lookup == nil:
		return wrap("table needs id_column or lookup")
	case d.Table.Lookup != nil:
		if err := check("lookup", d.Table.Lookup.Source, loader.KindJSON); err != nil {
			return err
		}
		if d.Table.Lookup.Column == "" {
			return wrap("lookup needs a column")
		}
	}
	if d.Encoding.MaxExtrusion <= 0 {
		return wrap("max_extrusion must be positive")
	}
	if d.Camera.MinDistance > d.Camera.MaxDistance {
		return wrap("camera min_distance above max_distance")
	}
	return nil
}
