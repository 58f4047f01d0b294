package tui

import (
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"choromap/internal/info"
	"choromap/internal/region"
)

// refreshRegions fills the table with the current period, largest first.
func (m *Model) refreshRegions() {
	if m.sess == nil {
		m.showRegions = false
		return
	}
	p := m.sess.Current()
	type row struct {
		id   region.ID
		name string
		v    float64
	}
	var rows []row
	for _, e := range m.sess.Registry().Entries() {
		v, err := e.Record.Value(p)
		if err != nil {
			continue
		}
		rows = append(rows, row{id: e.ID, name: e.Record.Name, v: v})
	}
	if len(rows) == 0 {
		// nothing to show for this period
		m.showRegions = false
		m.status = "no values for " + string(p)
		return
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].v > rows[j].v })
	idW, nameW := 4, 6
	for _, r := range rows {
		idW = max(idW, len(r.id)+2)
		nameW = min(24, max(nameW, len([]rune(r.name))+2))
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "ID", Width: idW},
		{Title: "Name", Width: nameW},
		{Title: string(p), Width: 14},
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		trows = append(trows, table.Row{fmt.Sprintf("%d", i+1), string(r.id), r.name, info.FormatValue(r.v)})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(trows)
}
