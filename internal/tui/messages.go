package tui

import "github.com/Veraticus/cashflow/internal/dashboard"

// snapshotMsg delivers a computed snapshot. key identifies the filter it was
// computed for so results of superseded selections can be dropped.
type snapshotMsg struct {
	key      string
	snapshot dashboard.Snapshot
}
