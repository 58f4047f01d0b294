package geom

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// DecodeFeatures reads a GeoJSON FeatureCollection, or a single Feature which
// is wrapped into a collection.
func DecodeFeatures(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		if len(fc.Features) == 0 {
			return nil, ErrEmptyGeometry
		}
		return fc, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		fc := geojson.NewFeatureCollection()
		fc.Append(f)
		return fc, nil
	case "":
		return nil, errors.New("invalid geojson: missing type")
	}
	return nil, errors.New("unsupported geojson type: " + head.Type)
}

// FeatureID returns the feature's identifier: the named property when prop is
// set, otherwise the top-level "id" member. Numeric ids are printed without
// a fractional part.
func FeatureID(f *geojson.Feature, prop string) string {
	if prop != "" {
		switch v := f.Properties[prop].(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return ""
	}
	switch v := f.ID.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// FeatureName reads a string property, "" when absent.
func FeatureName(f *geojson.Feature, prop string) string {
	if prop == "" {
		return ""
	}
	return f.Properties.MustString(prop, "")
}
