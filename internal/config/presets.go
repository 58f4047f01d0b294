package config

import (
	"choromap/internal/geom"
	"choromap/internal/loader"
	"choromap/internal/scene"
)

// Presets are the two bundled datasets. Paths are relative to the working
// directory.
//
// Neither preset sets Placement, so both get the default 90 degree tilt with
// no translation. The projector already centres each map on the origin, which
// makes a fixed screen offset or the sfrents z -= 50 shift unnecessary.
func Presets() []Dataset {
	ds := []Dataset{
		{
			Name:  "romania",
			Title: "Romania census population",
			Scope: "an",
			Sources: []loader.Source{
				{Key: "judete", Kind: loader.KindTopoJSON, Path: "data/romania-topo.json", Object: "romania-counties-geojson"},
				{Key: "id_judete", Kind: loader.KindJSON, Path: "data/judete-id.json"},
				{Key: "recensaminte", Kind: loader.KindCSV, Path: "data/recensaminte.csv"},
			},
			Table: TableSpec{
				Source:    "recensaminte",
				NonPeriod: []string{"name"},
				Lookup:    &LookupSpec{Source: "id_judete", Column: "name"},
			},
			Geometry: GeometrySpec{
				Source:       "judete",
				NameProperty: "name",
				Rules: geom.Rules{
					// Ilfov's second ring is Bucharest, which has its own feature
					Normalize: map[string]geom.Normalization{"IF": {KeepRings: 1}},
				},
				Center: &[2]float64{24.9668, 45.9432},
			},
			Encoding: EncodingSpec{MaxExtrusion: 10},
			Style:    scene.Style{Hue: 105, Saturation: 0.8},
			Label:    "{{.Name}}: {{.Value}}",
			Camera: CameraSpec{
				Position: [3]float64{-8.278324114488553, 23.715105536749885, 5.334970045945842},
				Up:       [3]float64{-0.3079731382492934, 0.9436692395156481, -0.12099963846565401},
			},
		},
		{
			Name:  "sfrents",
			Title: "San Francisco median rent",
			Scope: "luna",
			Sources: []loader.Source{
				{Key: "sfzips", Kind: loader.KindTopoJSON, Path: "data/sf.json", Object: "sfzips"},
				{Key: "sfrents", Kind: loader.KindCSV, Path: "data/sfrents.csv"},
			},
			Table: TableSpec{
				Source:     "sfrents",
				NonPeriod:  []string{"Zip", "Name"},
				IDColumn:   "Zip",
				NameColumn: "Name",
			},
			Geometry: GeometrySpec{
				Source: "sfzips",
				Rules: geom.Rules{
					Exclude: []string{"94104", "94129", "94130"},
				},
				Center: &[2]float64{-122.4167, 37.7833},
			},
			Encoding: EncodingSpec{MaxExtrusion: 4},
			Style:    scene.Style{Hue: 105, SaturationFollowsValue: true},
			Label:    "{{.ID}} ({{.Name}}): ${{.Value}}/mo",
		},
	}
	for i := range ds {
		ds[i].applyDefaults()
	}
	return ds
}
