package tui

import (
	"context"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"choromap/internal/config"
	"choromap/internal/loader"
	"choromap/internal/logger"
	"choromap/internal/scene"
	"choromap/internal/session"
	"choromap/internal/viewstate"
)

// Options configures a Model.
type Options struct {
	Datasets []config.Dataset
	Dataset  string // initial dataset name
	Fragment string // initial "#/<scope>/<period>", overrides the saved one
	Loader   *loader.Loader
	Store    viewstate.Store
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	failed bool

	// dataset switcher
	datasets []config.Dataset
	l        list.Model

	ld    *loader.Loader
	store viewstate.Store

	canvas  *Canvas
	sess    *session.Session
	loading string // dataset being opened

	initial  string
	fragment string

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hover      scene.Hit
	label      string

	// fragment prompt
	promptMode bool
	ta         textarea.Model

	// regions table
	showRegions bool
	tbl         table.Model
}

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		status:      "choromap ready",
		datasets:    opts.Datasets,
		ld:          opts.Loader,
		store:       opts.Store,
		canvas:      NewCanvas(),
		initial:     opts.Dataset,
		fragment:    opts.Fragment,
	}
	if m.ld == nil {
		m.ld = loader.New(nil)
	}
	if m.store == nil {
		m.store = viewstate.NewMemory()
	}
	if m.initial == "" && len(m.datasets) > 0 {
		m.initial = m.datasets[0].Name
	}
	m.loading = m.initial
	m.status = "loading " + m.initial + "..."
	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(datasetItems(m.datasets), d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "#/<scope>/<period>  Enter to go, Esc to cancel"
	m.ta.CharLimit = 64
	m.ta.ShowLineNumbers = false
	m.ta.SetWidth(40)
	m.ta.SetHeight(1)
	// regions table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

func (m Model) Init() tea.Cmd {
	ds, ok := config.Find(m.datasets, m.initial)
	if !ok {
		return func() tea.Msg {
			return sessionMsg{name: m.initial, err: errUnknownDataset(m.initial)}
		}
	}
	return m.open(ds, m.fragment)
}

// Session is the open session, nil while loading or after a failure.
func (m Model) Session() *session.Session { return m.sess }

// Close saves the view state and tears the session down.
func (m Model) Close() {
	if m.sess == nil {
		return
	}
	ctx := context.Background()
	if err := viewstate.SaveCamera(ctx, m.store, m.canvas.Camera.State()); err != nil {
		logger.L().Warn("camera_save_failed", "err", err)
	}
	if err := viewstate.SaveFragment(ctx, m.store, m.sess.Dataset().Name, m.sess.Fragment()); err != nil {
		logger.L().Warn("fragment_save_failed", "err", err)
	}
	m.sess.Close()
}
