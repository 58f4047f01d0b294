package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"choromap/internal/region"
)

const (
	sidebarWidth = 28
	headerHeight = 2 // title, period bar
	footerHeight = 2 // info box, status
)

type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

// layout computes the screen regions; View and mouse handling share it.
func (m Model) layout() layout {
	lo := layout{contentW: max(10, m.width), contentH: max(4, m.height-headerHeight-footerHeight)}
	lo.mapY = headerHeight
	lo.mapW = lo.contentW
	if m.showSidebar {
		lo.mapX = sidebarWidth + 1
		lo.mapW -= sidebarWidth + 1
	}
	lo.mapW = max(10, lo.mapW)
	lo.mapH = lo.contentH
	return lo
}

type periodSpan struct {
	x0, x1 int // screen columns, x1 exclusive
	p      region.Period
}

// periodBar lays out one button per period. When they do not fit, the
// window slides so the current period stays visible.
func (m Model) periodBar(width int) (string, []periodSpan) {
	if m.sess == nil {
		return "", nil
	}
	periods := m.sess.Periods()
	cur := m.sess.Current()
	widths := make([]int, len(periods))
	ci := 0
	for i, p := range periods {
		widths[i] = len(p) + 2
		if p == cur {
			ci = i
		}
	}
	lo, hi := ci, ci+1
	used := widths[ci]
	for {
		grown := false
		if hi < len(periods) && used+widths[hi] <= width {
			used += widths[hi]
			hi++
			grown = true
		}
		if lo > 0 && used+widths[lo-1] <= width {
			lo--
			used += widths[lo]
			grown = true
		}
		if !grown {
			break
		}
	}
	var b strings.Builder
	var spans []periodSpan
	x := 0
	for i := lo; i < hi; i++ {
		st := periodStyle
		if periods[i] == cur {
			st = periodActiveStyle
		}
		b.WriteString(st.Render(string(periods[i])))
		spans = append(spans, periodSpan{x0: x, x1: x + widths[i], p: periods[i]})
		x += widths[i]
	}
	return b.String(), spans
}

func (m Model) periodAt(x int) (region.Period, bool) {
	_, spans := m.periodBar(m.layout().contentW)
	for _, s := range spans {
		if x >= s.x0 && x < s.x1 {
			return s.p, true
		}
	}
	return "", false
}

// renderMap draws the canvas into a w x h block.
func (m Model) renderMap(w, h int) string {
	if m.sess == nil {
		msg := "no dataset loaded"
		if m.loading != "" {
			msg = "loading " + m.loading + "..."
		}
		st := dimStyle
		if m.failed {
			msg = m.status
			st = errStyle
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, st.Render(msg))
	}
	hl := m.hover
	if !m.hovering {
		hl.RegionID = ""
	}
	return strings.Join(m.canvas.Render(w, h, hl), "\n")
}
