// Package ingest parses time-series tables into a region builder.
package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"choromap/internal/region"
)

var ErrMalformedInput = errors.New("malformed input")

// ParseError reports a cell that is not a number. It matches
// ErrMalformedInput under errors.Is.
type ParseError struct {
	Row    int // 1-based data row
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrMalformedInput, e.Err} }

// ExtractPeriods lists the header columns that are not in nonPeriod, in header
// order. A table without rows or without period columns is malformed.
func ExtractPeriods(t Table, nonPeriod []string) ([]region.Period, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedInput)
	}
	skip := make(map[string]bool, len(nonPeriod))
	for _, c := range nonPeriod {
		skip[c] = true
	}
	var out []region.Period
	for _, h := range t.Header {
		if skip[h] || h == "" {
			continue
		}
		out = append(out, region.Period(h))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no period columns", ErrMalformedInput)
	}
	return out, nil
}

// IDResolver maps a table row to its region.
type IDResolver interface {
	Resolve(t Table, row int) (region.ID, error)
}

// ColumnID reads the id straight from a column.
type ColumnID struct {
	Column string
}

func (c ColumnID) Resolve(t Table, row int) (region.ID, error) {
	v, ok := t.Cell(row, c.Column)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: row %d: missing %q", ErrMalformedInput, row+1, c.Column)
	}
	return region.ID(v), nil
}

// LookupID translates a human name column into an id through a lookup table.
type LookupID struct {
	Column string
	Table  map[string]string
}

func (l LookupID) Resolve(t Table, row int) (region.ID, error) {
	name, ok := t.Cell(row, l.Column)
	if !ok {
		return "", fmt.Errorf("%w: row %d: missing %q", ErrMalformedInput, row+1, l.Column)
	}
	id, ok := l.Table[name]
	if !ok {
		id, ok = l.Table[strings.TrimSpace(name)]
	}
	if !ok || id == "" {
		return "", fmt.Errorf("%w: row %d: no id for %q", ErrMalformedInput, row+1, name)
	}
	return region.ID(id), nil
}

// Spec describes how rows map onto records.
type Spec struct {
	IDs        IDResolver
	NameColumn string // optional, sets Record.Name
}

// Ingest stores every (row, period) value into b and returns the largest
// value seen. Cells must all parse; a gap would break scale calibration.
func Ingest(b *region.Builder, t Table, periods []region.Period, spec Spec) (float64, error) {
	if spec.IDs == nil {
		return 0, errors.New("ingest: no id resolver")
	}
	cols := make([]int, len(periods))
	for i, p := range periods {
		cols[i] = t.Column(string(p))
		if cols[i] < 0 {
			return 0, fmt.Errorf("%w: period column %q not in header", ErrMalformedInput, p)
		}
	}
	max := 0.0
	for i, row := range t.Rows {
		id, err := spec.IDs.Resolve(t, i)
		if err != nil {
			return 0, err
		}
		rec := b.Ensure(id)
		if spec.NameColumn != "" {
			if name, ok := t.Cell(i, spec.NameColumn); ok && strings.TrimSpace(name) != "" {
				rec.Name = strings.TrimSpace(name)
			}
		}
		for j, p := range periods {
			raw := ""
			if cols[j] < len(row) {
				raw = row[cols[j]]
			}
			v, err := parseValue(raw)
			if err != nil {
				return 0, &ParseError{Row: i + 1, Column: string(p), Value: raw, Err: err}
			}
			rec.Series[p] = v
			if v > max {
				max = v
			}
		}
	}
	return max, nil
}

// parseValue accepts plain integers and decimals, tolerating thousands
// separators the way spreadsheets export them.
func parseValue(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(n), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}
