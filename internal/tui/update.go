package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"choromap/internal/logger"
	"choromap/internal/region"
	"choromap/internal/scene"
	"choromap/internal/viewstate"
)

const orbitStep = math.Pi / 36

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case sessionMsg:
		return m.onSession(msg), nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.promptMode {
			return m.updatePrompt(msg)
		}
		if m.showRegions {
			switch msg.String() {
			case "a", "esc":
				m.showRegions = false
				return m, nil
			case "ctrl+c", "q":
			default:
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.Close()
			return m, tea.Quit
		case ",", "[":
			m.step(-1)
		case ".", "]":
			m.step(1)
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if m.sess != nil {
				i := int(msg.String()[0] - '1')
				if ps := m.sess.Periods(); i < len(ps) {
					m.selectPeriod(ps[i])
				}
			}
		case "+", "=":
			m.canvas.Camera.Zoom(1 / 1.2)
			m.status = fmt.Sprintf("distance: %.1f", m.canvas.Camera.Distance())
		case "-", "_":
			m.canvas.Camera.Zoom(1.2)
			m.status = fmt.Sprintf("distance: %.1f", m.canvas.Camera.Distance())
		case "left":
			m.canvas.Camera.Orbit(-orbitStep, 0)
		case "right":
			m.canvas.Camera.Orbit(orbitStep, 0)
		case "up":
			if !m.showSidebar {
				m.canvas.Camera.Orbit(0, orbitStep)
			}
		case "down":
			if !m.showSidebar {
				m.canvas.Camera.Orbit(0, -orbitStep)
			}
		case "r":
			if m.sess != nil {
				m.canvas.Camera = newCamera(m.sess.Dataset().Camera)
				m.status = "camera reset"
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "g":
			m.promptMode = true
			m.ta.SetValue("")
			if m.sess != nil {
				m.ta.SetValue(m.sess.Fragment())
			}
			m.ta.Focus()
			m.status = "go to fragment"
			return m, nil
		case "a":
			m.showRegions = true
			m.refreshRegions()
		case "h":
			m.helpVisible = !m.helpVisible
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(datasetItem); ok && it.ds.Name != m.loading {
					m.loading = it.ds.Name
					m.status = "loading " + it.ds.Name + "..."
					return m, m.open(it.ds, "")
				}
			}
		}
	case tea.MouseMsg:
		m = m.onMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		frag := strings.TrimSpace(m.ta.Value())
		m.promptMode = false
		m.ta.Blur()
		if m.sess == nil || frag == "" {
			return m, nil
		}
		p, err := m.sess.SelectFragment(frag)
		m.afterSelect(p, err)
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) onSession(msg sessionMsg) Model {
	if msg.name != m.loading {
		// superseded by a later switch
		if msg.sess != nil {
			msg.sess.Close()
		}
		return m
	}
	m.loading = ""
	if msg.err != nil {
		logger.L().Error("session_open_failed", "dataset", msg.name, "err", msg.err)
		m.failed = true
		m.status = "open " + msg.name + ": " + msg.err.Error()
		return m
	}
	first := m.sess == nil
	m.Close()
	m.sess = msg.sess
	m.failed = false
	m.label = ""
	m.canvas.Camera = newCamera(msg.sess.Dataset().Camera)
	if first {
		if cam, err := viewstate.RestoreCamera(context.Background(), m.store); err == nil {
			m.canvas.Camera.Restore(cam)
		}
	}
	p, err := m.sess.SelectFragment(msg.fragment)
	m.afterSelect(p, err)
	return m
}

func (m *Model) step(delta int) {
	if m.sess == nil {
		return
	}
	err := m.sess.Step(delta)
	m.afterSelect(m.sess.Current(), err)
}

func (m *Model) selectPeriod(p region.Period) {
	if m.sess == nil {
		return
	}
	m.afterSelect(p, m.sess.Select(p))
}

// afterSelect refreshes everything derived from the current period.
func (m *Model) afterSelect(p region.Period, err error) {
	if err != nil {
		m.status = "period " + string(p) + ": " + err.Error()
		return
	}
	ds := m.sess.Dataset()
	m.status = fmt.Sprintf("%s  %s  regions=%s", ds.Title, m.sess.Fragment(), humanize.Comma(int64(len(m.sess.Meshes()))))
	if err := viewstate.SaveFragment(context.Background(), m.store, ds.Name, m.sess.Fragment()); err != nil {
		logger.L().Warn("fragment_save_failed", "err", err)
	}
	if m.hovering {
		m.label = m.sess.Label(m.canvas.Pick(m.hoverCellX, m.hoverCellY))
	}
	if m.showRegions {
		m.refreshRegions()
	}
}

func (m Model) onMouse(msg tea.MouseMsg) Model {
	lo := m.layout()
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.canvas.Camera.Zoom(1 / 1.1)
		return m
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.canvas.Camera.Zoom(1.1)
		return m
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 1:
		if p, ok := m.periodAt(msg.X); ok {
			m.selectPeriod(p)
		}
		return m
	}
	cx, cy := msg.X, msg.Y
	if m.sess == nil || m.showRegions || cx < lo.mapX || cx >= lo.mapX+lo.mapW || cy < lo.mapY || cy >= lo.mapY+lo.mapH {
		m.hovering = false
		m.label = ""
		return m
	}
	m.hovering = true
	m.hoverCellX = cx - lo.mapX
	m.hoverCellY = cy - lo.mapY
	hits := m.canvas.Pick(m.hoverCellX, m.hoverCellY)
	m.hover = scene.Hit{}
	if len(hits) > 0 {
		m.hover = hits[0]
	}
	m.label = m.sess.Label(hits)
	return m
}
