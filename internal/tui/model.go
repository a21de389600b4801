// Package tui implements the interactive terminal dashboard.
package tui

import (
	"errors"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/dashboard"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the dashboard TUI state.
type Model struct {
	theme    themes.Theme
	service  *dashboard.Service
	ledger   *model.Ledger
	view     *cli.SnapshotView
	warnings []string
	help     help.Model
	viewport viewport.Model
	keymap   KeyMap
	snapshot dashboard.Snapshot
	filters  filterState
	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates the dashboard model. The ledger is narrowed by the initial
// filter once; interactive filters then apply on top of that view.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Service == nil {
		return Model{}, errors.New("dashboard service is required")
	}
	if cfg.Ledger == nil {
		return Model{}, errors.New("ledger is required")
	}

	ledger := cfg.Ledger
	if !cfg.Filter.IsZero() {
		ledger = ledger.Filter(cfg.Filter)
	}

	view := cli.NewSnapshotView(cfg.Format)
	view.TopN = cfg.TopN

	keymap := DefaultKeyMap()
	vp := viewport.New(cfg.Width, cfg.Height)
	vp.KeyMap.Up = keymap.Up
	vp.KeyMap.Down = keymap.Down
	vp.KeyMap.PageUp = keymap.PageUp
	vp.KeyMap.PageDown = keymap.PageDown

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		theme:    cfg.Theme,
		service:  cfg.Service,
		ledger:   ledger,
		view:     view,
		warnings: cfg.Warnings,
		help:     h,
		viewport: vp,
		keymap:   keymap,
		filters:  newFilterState(ledger),
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.resize()
	return m, nil
}

// Init computes the first snapshot.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case snapshotMsg:
		if msg.key != m.filters.filter().Fingerprint() {
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.ready = true
		m.viewport.SetContent(m.theme.Body.Render(m.view.Render(msg.snapshot)))
		m.viewport.GotoTop()
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keymap.Month):
			return m.cycle(dimMonth)
		case key.Matches(msg, m.keymap.Type):
			return m.cycle(dimType)
		case key.Matches(msg, m.keymap.Category):
			return m.cycle(dimCategory)
		case key.Matches(msg, m.keymap.Subcategory):
			return m.cycle(dimSubcategory)
		case key.Matches(msg, m.keymap.Reset):
			if m.filters.isZero() {
				return m, nil
			}
			m.filters.reset()
			return m, m.refresh()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) cycle(d dimension) (tea.Model, tea.Cmd) {
	m.filters.cycle(d)
	return m, m.refresh()
}

// Snapshot returns the snapshot currently displayed.
func (m Model) Snapshot() dashboard.Snapshot {
	return m.snapshot
}

// Filter returns the interactive filter currently selected.
func (m Model) Filter() model.Filter {
	return m.filters.filter()
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-lipgloss.Height(m.header())-lipgloss.Height(m.footer()))
}
