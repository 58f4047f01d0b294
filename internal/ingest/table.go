package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Table is a CSV document with its header kept in file order.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadCSV reads a header row followed by data rows. Header names are trimmed;
// every row must have as many fields as the header.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(recs) == 0 {
		return Table{}, errors.New("empty csv")
	}
	header := make([]string, len(recs[0]))
	for i, h := range recs[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return Table{Header: header, Rows: recs[1:]}, nil
}

// Column returns the index of name in the header, -1 when absent.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns row[i][name].
func (t Table) Cell(i int, name string) (string, bool) {
	c := t.Column(name)
	if c < 0 || i < 0 || i >= len(t.Rows) || c >= len(t.Rows[i]) {
		return "", false
	}
	return t.Rows[i][c], true
}
