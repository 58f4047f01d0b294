package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// WKTColumns names the columns of a geometry table. Empty names fall back to
// id, name and wkt.
type WKTColumns struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	WKT  string `yaml:"wkt"`
}

func (c WKTColumns) withDefaults() WKTColumns {
	if c.ID == "" {
		c.ID = "id"
	}
	if c.Name == "" {
		c.Name = "name"
	}
	if c.WKT == "" {
		c.WKT = "wkt"
	}
	return c
}

// FeaturesFromWKT turns rows of (id, name, WKT) into features. The id lands in
// Feature.ID and the name in the "name" property.
func FeaturesFromWKT(header []string, rows [][]string, cols WKTColumns) (*geojson.FeatureCollection, error) {
	cols = cols.withDefaults()
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	iID, okID := idx[strings.ToLower(cols.ID)]
	iWKT, okWKT := idx[strings.ToLower(cols.WKT)]
	if !okID || !okWKT {
		return nil, errors.New("wkt csv: id/wkt columns not found")
	}
	iName, okName := idx[strings.ToLower(cols.Name)]
	fc := geojson.NewFeatureCollection()
	for n, row := range rows {
		if iID >= len(row) || iWKT >= len(row) {
			return nil, fmt.Errorf("wkt csv: row %d: short row", n+1)
		}
		g, err := wkt.Unmarshal(strings.TrimSpace(row[iWKT]))
		if err != nil {
			return nil, fmt.Errorf("wkt csv: row %d: %w", n+1, err)
		}
		f := geojson.NewFeature(g)
		f.ID = strings.TrimSpace(row[iID])
		if okName && iName < len(row) {
			f.Properties["name"] = strings.TrimSpace(row[iName])
		}
		fc.Append(f)
	}
	if len(fc.Features) == 0 {
		return nil, ErrEmptyGeometry
	}
	return fc, nil
}
