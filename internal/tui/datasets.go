package tui

import (
	"context"
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"choromap/internal/config"
	"choromap/internal/session"
	"choromap/internal/viewstate"
)

type datasetItem struct {
	ds config.Dataset
}

func (d datasetItem) Title() string       { return d.ds.Name }
func (d datasetItem) Description() string { return d.ds.Title }
func (d datasetItem) FilterValue() string { return d.ds.Name + " " + d.ds.Title }

func datasetItems(ds []config.Dataset) []list.Item {
	items := make([]list.Item, 0, len(ds))
	for _, d := range ds {
		items = append(items, datasetItem{ds: d})
	}
	return items
}

// sessionMsg delivers the outcome of opening a dataset.
type sessionMsg struct {
	name     string
	sess     *session.Session
	fragment string
	err      error
}

func errUnknownDataset(name string) error {
	return fmt.Errorf("unknown dataset %q", name)
}

// open loads ds off the event loop. The session only touches the canvas once
// a period is selected from Update. Callers set m.loading.
func (m Model) open(ds config.Dataset, frag string) tea.Cmd {
	canvas, ld, store := m.canvas, m.ld, m.store
	return func() tea.Msg {
		ctx := context.Background()
		if frag == "" {
			if saved, err := viewstate.RestoreFragment(ctx, store, ds.Name); err == nil {
				frag = saved
			}
		}
		s, err := session.Open(ctx, ds, canvas, ld)
		return sessionMsg{name: ds.Name, sess: s, fragment: frag, err: err}
	}
}
