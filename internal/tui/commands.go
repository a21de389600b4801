package tui

import tea "github.com/charmbracelet/bubbletea"

// refresh computes the snapshot for the current selection off the update loop.
func (m Model) refresh() tea.Cmd {
	service, ledger := m.service, m.ledger
	filter := m.filters.filter()

	return func() tea.Msg {
		return snapshotMsg{
			key:      filter.Fingerprint(),
			snapshot: service.Snapshot(ledger, filter),
		}
	}
}
