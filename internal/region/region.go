// Package region holds per-region attribute records. Population happens on a
// Builder during the load phase; rendering only ever sees the Registry the
// builder produces.
package region

import (
	"errors"
	"fmt"

	"choromap/internal/geom"
)

var (
	ErrNotFound      = errors.New("region not found")
	ErrMissingPeriod = errors.New("period not in series")
)

// ID identifies one region (county code, zip code). It is the join key
// between tabular data and geometry and the tag carried by meshes.
type ID string

// Period is one time bucket taken from a table header ("2011", "2014-06").
// Ordering is the header order, kept by whoever holds the period list.
type Period string

// Record is the attribute bag for one region.
type Record struct {
	Name    string
	Series  map[Period]float64
	Contour *geom.Contour
}

// Value returns the series value for p.
func (r Record) Value(p Period) (float64, error) {
	v, ok := r.Series[p]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingPeriod, p)
	}
	return v, nil
}

// Renderable reports whether geometry was joined onto the record.
func (r Record) Renderable() bool {
	return !r.Contour.Empty()
}

func (r Record) clone() Record {
	out := Record{Name: r.Name, Contour: r.Contour, Series: make(map[Period]float64, len(r.Series))}
	for k, v := range r.Series {
		out.Series[k] = v
	}
	return out
}

// Entry pairs an id with its record.
type Entry struct {
	ID     ID
	Record Record
}
