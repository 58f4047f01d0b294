package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header: title, then the period bar
	title := " choromap "
	if m.sess != nil {
		title += "─ " + m.sess.Dataset().Title + " "
	}
	header := lipgloss.NewStyle().Width(lo.contentW).Render(titleStyle.Render(title))
	bar, _ := m.periodBar(lo.contentW)
	header = lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.NewStyle().Width(lo.contentW).Height(1).Render(bar))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showRegions:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.promptMode:
		m.ta.SetWidth(min(lo.mapW-4, 48))
		box := boxStyle.Render(m.ta.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	default:
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: info box, then status and help
	infobox := lipgloss.NewStyle().Width(lo.contentW).Render(infoStyle.Render(" " + m.label))
	st := dimStyle
	if m.failed {
		st = errStyle
	}
	status := st.Render(" " + m.status + " ")
	footer := lipgloss.NewStyle().Width(lo.contentW).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp()))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, infobox, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		", . period",
		"←→↑↓ orbit",
		"+/- zoom",
		"r reset",
		"g go to",
		"a regions",
		"Tab datasets",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
