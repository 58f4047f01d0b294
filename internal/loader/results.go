package loader

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"choromap/internal/ingest"
)

// Results maps source keys to decoded payloads.
type Results map[string]any

func (r Results) Table(key string) (ingest.Table, error) {
	t, ok := r[key].(ingest.Table)
	if !ok {
		return ingest.Table{}, fmt.Errorf("loader: %q is not a table (%T)", key, r[key])
	}
	return t, nil
}

func (r Results) Features(key string) (*geojson.FeatureCollection, error) {
	fc, ok := r[key].(*geojson.FeatureCollection)
	if !ok || fc == nil {
		return nil, fmt.Errorf("loader: %q is not a feature collection (%T)", key, r[key])
	}
	return fc, nil
}

func (r Results) Lookup(key string) (map[string]string, error) {
	m, ok := r[key].(map[string]string)
	if !ok {
		return nil, fmt.Errorf("loader: %q is not a lookup table (%T)", key, r[key])
	}
	return m, nil
}
